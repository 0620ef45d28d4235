package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing representa uma oferta de venda de uma cor a preço fixo.
// Para cada color_id existe no máximo uma listagem com is_active = true,
// garantido por índice único parcial no banco.
type Listing struct {
	ID        string          `db:"id" json:"id"`
	ColorID   int             `db:"color_id" json:"color_id"`
	SellerID  string          `db:"seller_id" json:"seller_id"`
	Price     decimal.Decimal `db:"price" json:"price"`
	IsActive  bool            `db:"is_active" json:"is_active"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// MarketplaceColor é a projeção de cor exibida no marketplace público.
type MarketplaceColor struct {
	HexCode        string `db:"hex_code" json:"hex_code"`
	Name           string `db:"name" json:"name"`
	InfluenceScore int    `db:"influence_score" json:"influence_score"`
}

// MarketplaceItem é uma listagem ativa junto com a cor anunciada,
// na forma consumida pela vitrine.
type MarketplaceItem struct {
	ID    string           `json:"id"`
	Price decimal.Decimal  `json:"price"`
	Color MarketplaceColor `json:"color"`
}
