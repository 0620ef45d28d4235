package models

import "fmt"

// Color representa uma das 16.777.216 cores RGB endereçáveis.
// O id é a própria cor: hex_code é derivado deterministicamente dele.
type Color struct {
	ID             int     `db:"id" json:"id"`
	HexCode        string  `db:"hex_code" json:"hex_code"`
	Name           string  `db:"name" json:"name"`
	OwnerID        *string `db:"owner_id" json:"owner_id,omitempty"`
	IsForSale      bool    `db:"is_for_sale" json:"is_for_sale"`
	InfluenceScore int     `db:"influence_score" json:"influence_score"`
}

// MaxColorID é o maior id válido de cor (0xFFFFFF).
const MaxColorID = 16777215

// HexFromID deriva o código hexadecimal de 6 dígitos a partir do id.
func HexFromID(id int) string {
	return fmt.Sprintf("%06X", id)
}
