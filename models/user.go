package models

import "time"

// User representa uma conta registrada na plataforma.
// PasswordHash nunca é serializado em respostas HTTP.
type User struct {
	ID               string    `db:"id" json:"id"`
	Username         string    `db:"username" json:"username"`
	Email            string    `db:"email" json:"email"`
	PasswordHash     string    `db:"password_hash" json:"-"`
	PayPalMerchantID *string   `db:"paypal_merchant_id" json:"-"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}
