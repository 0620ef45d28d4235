package services_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/ferreirogomes/colorverse/models"
	"github.com/ferreirogomes/colorverse/services"
)

// MockLedger é uma implementação mock de services.Ledger para testes de unidade.
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) GetUserByEmail(ctx context.Context, email string) (models.User, bool, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Bool(1), args.Error(2)
}

func (m *MockLedger) GetUserByID(ctx context.Context, id string) (models.User, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Bool(1), args.Error(2)
}

func (m *MockLedger) RegisterUserWithColor(ctx context.Context, username, email, passwordHash string) (models.User, models.Color, error) {
	args := m.Called(ctx, username, email, passwordHash)
	return args.Get(0).(models.User), args.Get(1).(models.Color), args.Error(2)
}

func (m *MockLedger) SetMerchantID(ctx context.Context, userID, merchantID string) error {
	args := m.Called(ctx, userID, merchantID)
	return args.Error(0)
}

func (m *MockLedger) GetColorsByOwner(ctx context.Context, ownerID string) ([]models.Color, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]models.Color), args.Error(1)
}

func (m *MockLedger) RenameColor(ctx context.Context, ownerID string, colorID int, name string) (models.Color, error) {
	args := m.Called(ctx, ownerID, colorID, name)
	return args.Get(0).(models.Color), args.Error(1)
}

func (m *MockLedger) GetListing(ctx context.Context, id string) (models.Listing, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Listing), args.Bool(1), args.Error(2)
}

func (m *MockLedger) ActiveListings(ctx context.Context) ([]models.MarketplaceItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.MarketplaceItem), args.Error(1)
}

func (m *MockLedger) CreateListing(ctx context.Context, sellerID string, colorID int, price decimal.Decimal) (models.Listing, error) {
	args := m.Called(ctx, sellerID, colorID, price)
	return args.Get(0).(models.Listing), args.Error(1)
}

func (m *MockLedger) CancelListing(ctx context.Context, sellerID, listingID string) error {
	args := m.Called(ctx, sellerID, listingID)
	return args.Error(0)
}

func (m *MockLedger) ExecutePurchase(ctx context.Context, listingID, buyerID, paypalOrderID string) (models.Transaction, error) {
	args := m.Called(ctx, listingID, buyerID, paypalOrderID)
	return args.Get(0).(models.Transaction), args.Error(1)
}

func (m *MockLedger) EnqueueReconciliation(ctx context.Context, rec models.Reconciliation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// MockGateway é uma implementação mock de services.PaymentGateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CaptureOrder(ctx context.Context, orderID string) (services.CaptureResult, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(services.CaptureResult), args.Error(1)
}
