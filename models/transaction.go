package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction é o registro imutável de auditoria de uma venda concluída.
// Criado exatamente uma vez por transferência; nunca alterado ou removido.
type Transaction struct {
	ID            string          `db:"id" json:"id"`
	ListingID     string          `db:"listing_id" json:"listing_id"`
	BuyerID       string          `db:"buyer_id" json:"buyer_id"`
	SellerID      string          `db:"seller_id" json:"seller_id"`
	Price         decimal.Decimal `db:"price" json:"price"`
	PayPalOrderID string          `db:"paypal_order_id" json:"paypal_order_id"`
	CompletedAt   time.Time       `db:"completed_at" json:"completed_at"`
}
