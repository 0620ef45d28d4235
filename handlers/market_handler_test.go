package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ferreirogomes/colorverse/auth"
	"github.com/ferreirogomes/colorverse/models"
	"github.com/ferreirogomes/colorverse/shared"
)

func authenticatedRequest(method, target string, body interface{}, userID string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	return req.WithContext(auth.WithUserID(req.Context(), userID))
}

// TestMarketplace devolve as listagens ativas em JSON.
func TestMarketplace(t *testing.T) {
	listings := new(MockListingManager)
	handler := NewMarketHandler(listings, new(MockTransferEngine))

	items := []models.MarketplaceItem{
		{ID: "listing-1", Price: decimal.RequireFromString("10.00"), Color: models.MarketplaceColor{HexCode: "FF0000"}},
	}
	listings.On("Marketplace", mock.Anything).Return(items, nil)

	rec := httptest.NewRecorder()
	handler.Marketplace(rec, httptest.NewRequest(http.MethodGet, "/api/marketplace", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.MarketplaceItem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Len(t, got, 1)
	assert.Equal(t, "listing-1", got[0].ID)
	assert.Equal(t, "FF0000", got[0].Color.HexCode)
	listings.AssertExpectations(t)
}

// TestSell publica a cor e responde 201 com a listagem criada.
func TestSell(t *testing.T) {
	listings := new(MockListingManager)
	handler := NewMarketHandler(listings, new(MockTransferEngine))

	price := decimal.RequireFromString("10.00")
	listing := models.Listing{ID: "listing-1", ColorID: 42, SellerID: "user-1", Price: price, IsActive: true}
	listings.On("Create", mock.Anything, "user-1", 42, mock.MatchedBy(func(p decimal.Decimal) bool {
		return p.Equal(price)
	})).Return(listing, nil)

	rec := httptest.NewRecorder()
	handler.Sell(rec, authenticatedRequest(http.MethodPost, "/api/market/sell",
		map[string]interface{}{"colorId": 42, "price": "10.00"}, "user-1"))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Success bool           `json:"success"`
		Listing models.Listing `json:"listing"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "listing-1", resp.Listing.ID)
	listings.AssertExpectations(t)
}

// TestSellBelowMinimum: preço abaixo do mínimo vira 400.
func TestSellBelowMinimum(t *testing.T) {
	listings := new(MockListingManager)
	handler := NewMarketHandler(listings, new(MockTransferEngine))

	listings.On("Create", mock.Anything, "user-1", 42, mock.Anything).
		Return(models.Listing{}, shared.ErrInvalidPrice)

	rec := httptest.NewRecorder()
	handler.Sell(rec, authenticatedRequest(http.MethodPost, "/api/market/sell",
		map[string]interface{}{"colorId": 42, "price": "0.10"}, "user-1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestSellNotOwner: vender cor alheia vira 403.
func TestSellNotOwner(t *testing.T) {
	listings := new(MockListingManager)
	handler := NewMarketHandler(listings, new(MockTransferEngine))

	listings.On("Create", mock.Anything, "user-1", 42, mock.Anything).
		Return(models.Listing{}, shared.ErrNotOwner)

	rec := httptest.NewRecorder()
	handler.Sell(rec, authenticatedRequest(http.MethodPost, "/api/market/sell",
		map[string]interface{}{"colorId": 42, "price": "10.00"}, "user-1"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// TestCancelListing encerra a listagem e responde sucesso.
func TestCancelListing(t *testing.T) {
	listings := new(MockListingManager)
	handler := NewMarketHandler(listings, new(MockTransferEngine))

	listings.On("Cancel", mock.Anything, "user-1", "listing-1").Return(nil)

	rec := httptest.NewRecorder()
	handler.Cancel(rec, authenticatedRequest(http.MethodPost, "/api/market/cancel",
		map[string]string{"listingId": "listing-1"}, "user-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	listings.AssertExpectations(t)
}

// TestCaptureOrder: compra bem-sucedida devolve a transação registrada.
func TestCaptureOrder(t *testing.T) {
	transfer := new(MockTransferEngine)
	handler := NewMarketHandler(new(MockListingManager), transfer)

	record := models.Transaction{
		ID:            "tx-1",
		ListingID:     "listing-1",
		BuyerID:       "buyer-1",
		SellerID:      "seller-1",
		Price:         decimal.RequireFromString("10.00"),
		PayPalOrderID: "order-1",
	}
	transfer.On("Purchase", mock.Anything, "listing-1", "buyer-1", "order-1").Return(record, nil)

	rec := httptest.NewRecorder()
	handler.CaptureOrder(rec, authenticatedRequest(http.MethodPost, "/api/market/capture-order",
		map[string]string{"orderId": "order-1", "listingId": "listing-1"}, "buyer-1"))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success     bool               `json:"success"`
		Transaction models.Transaction `json:"transaction"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "tx-1", resp.Transaction.ID)
	transfer.AssertExpectations(t)
}

// TestCaptureOrderMissingFields: sem orderId ou listingId não há chamada ao
// motor de transferência.
func TestCaptureOrderMissingFields(t *testing.T) {
	transfer := new(MockTransferEngine)
	handler := NewMarketHandler(new(MockListingManager), transfer)

	rec := httptest.NewRecorder()
	handler.CaptureOrder(rec, authenticatedRequest(http.MethodPost, "/api/market/capture-order",
		map[string]string{"orderId": "order-1"}, "buyer-1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	transfer.AssertNotCalled(t, "Purchase", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestCaptureOrderAlreadySold: o perdedor da corrida recebe 409.
func TestCaptureOrderAlreadySold(t *testing.T) {
	transfer := new(MockTransferEngine)
	handler := NewMarketHandler(new(MockListingManager), transfer)

	transfer.On("Purchase", mock.Anything, "listing-1", "buyer-2", "order-2").
		Return(models.Transaction{}, shared.ErrListingAlreadySold)

	rec := httptest.NewRecorder()
	handler.CaptureOrder(rec, authenticatedRequest(http.MethodPost, "/api/market/capture-order",
		map[string]string{"orderId": "order-2", "listingId": "listing-1"}, "buyer-2"))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

// TestCaptureOrderFailedAfterCapture: pagamento capturado sem efeito no ledger
// vira 502 com mensagem estável, sem vazar o erro interno.
func TestCaptureOrderFailedAfterCapture(t *testing.T) {
	transfer := new(MockTransferEngine)
	handler := NewMarketHandler(new(MockListingManager), transfer)

	transfer.On("Purchase", mock.Anything, "listing-1", "buyer-1", "order-1").
		Return(models.Transaction{}, shared.ErrOrderFailedAfterCapture)

	rec := httptest.NewRecorder()
	handler.CaptureOrder(rec, authenticatedRequest(http.MethodPost, "/api/market/capture-order",
		map[string]string{"orderId": "order-1", "listingId": "listing-1"}, "buyer-1"))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, shared.ErrOrderFailedAfterCapture.Error(), resp.Error)
}

// TestCaptureOrderPaymentNotCompleted: captura recusada vira 402.
func TestCaptureOrderPaymentNotCompleted(t *testing.T) {
	transfer := new(MockTransferEngine)
	handler := NewMarketHandler(new(MockListingManager), transfer)

	transfer.On("Purchase", mock.Anything, "listing-1", "buyer-1", "order-1").
		Return(models.Transaction{}, shared.ErrPaymentNotCompleted)

	rec := httptest.NewRecorder()
	handler.CaptureOrder(rec, authenticatedRequest(http.MethodPost, "/api/market/capture-order",
		map[string]string{"orderId": "order-1", "listingId": "listing-1"}, "buyer-1"))

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
}
