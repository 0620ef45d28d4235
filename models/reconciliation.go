package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Situações possíveis de uma pendência de reconciliação.
const (
	ReconciliationPending        = "pending"
	ReconciliationRefundRequired = "refund_required"
	ReconciliationResolved       = "resolved"
)

// Reconciliation registra um pagamento capturado no PayPal cujo efeito no
// ledger não se concretizou (listagem já vendida, falha de commit, valor
// divergente). Essas pendências nunca podem ser descartadas em silêncio:
// o reconciliador as encaminha para estorno.
type Reconciliation struct {
	ID            string          `db:"id" json:"id"`
	PayPalOrderID string          `db:"paypal_order_id" json:"paypal_order_id"`
	ListingID     string          `db:"listing_id" json:"listing_id"`
	BuyerID       string          `db:"buyer_id" json:"buyer_id"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Reason        string          `db:"reason" json:"reason"`
	Status        string          `db:"status" json:"status"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}
