package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ferreirogomes/colorverse/models"
)

// Ledger é a visão que os services têm do Ledger Store. Implementado por
// *storage.DB; os testes usam um mock testify.
type Ledger interface {
	// usuários
	GetUserByEmail(ctx context.Context, email string) (models.User, bool, error)
	GetUserByID(ctx context.Context, id string) (models.User, bool, error)
	RegisterUserWithColor(ctx context.Context, username, email, passwordHash string) (models.User, models.Color, error)
	SetMerchantID(ctx context.Context, userID, merchantID string) error

	// cores
	GetColorsByOwner(ctx context.Context, ownerID string) ([]models.Color, error)
	RenameColor(ctx context.Context, ownerID string, colorID int, name string) (models.Color, error)

	// listagens
	GetListing(ctx context.Context, id string) (models.Listing, bool, error)
	ActiveListings(ctx context.Context) ([]models.MarketplaceItem, error)
	CreateListing(ctx context.Context, sellerID string, colorID int, price decimal.Decimal) (models.Listing, error)
	CancelListing(ctx context.Context, sellerID, listingID string) error

	// transferência e reconciliação
	ExecutePurchase(ctx context.Context, listingID, buyerID, paypalOrderID string) (models.Transaction, error)
	EnqueueReconciliation(ctx context.Context, rec models.Reconciliation) error
}
