package handlers

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/ferreirogomes/colorverse/models"
)

type MockListingManager struct {
	mock.Mock
}

func (m *MockListingManager) Create(ctx context.Context, sellerID string, colorID int, price decimal.Decimal) (models.Listing, error) {
	args := m.Called(ctx, sellerID, colorID, price)
	return args.Get(0).(models.Listing), args.Error(1)
}

func (m *MockListingManager) Cancel(ctx context.Context, sellerID, listingID string) error {
	args := m.Called(ctx, sellerID, listingID)
	return args.Error(0)
}

func (m *MockListingManager) Marketplace(ctx context.Context) ([]models.MarketplaceItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.MarketplaceItem), args.Error(1)
}

type MockTransferEngine struct {
	mock.Mock
}

func (m *MockTransferEngine) Purchase(ctx context.Context, listingID, buyerID, orderID string) (models.Transaction, error) {
	args := m.Called(ctx, listingID, buyerID, orderID)
	return args.Get(0).(models.Transaction), args.Error(1)
}

type MockRegistrar struct {
	mock.Mock
}

func (m *MockRegistrar) Register(ctx context.Context, username, email, password string) (models.User, models.Color, error) {
	args := m.Called(ctx, username, email, password)
	return args.Get(0).(models.User), args.Get(1).(models.Color), args.Error(2)
}

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Colors(ctx context.Context, userID string) ([]models.Color, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Color), args.Error(1)
}

func (m *MockAccountService) RenameColor(ctx context.Context, userID string, colorID int, name string) (models.Color, error) {
	args := m.Called(ctx, userID, colorID, name)
	return args.Get(0).(models.Color), args.Error(1)
}

func (m *MockAccountService) PayPalStatus(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type MockOnboarder struct {
	mock.Mock
}

func (m *MockOnboarder) ConnectURL(userID string) string {
	args := m.Called(userID)
	return args.String(0)
}

func (m *MockOnboarder) SyncMerchant(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
