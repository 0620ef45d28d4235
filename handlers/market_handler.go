package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ferreirogomes/colorverse/auth"
	"github.com/ferreirogomes/colorverse/models"
)

// ListingManager é o recorte do service de listagens usado neste handler.
type ListingManager interface {
	Create(ctx context.Context, sellerID string, colorID int, price decimal.Decimal) (models.Listing, error)
	Cancel(ctx context.Context, sellerID, listingID string) error
	Marketplace(ctx context.Context) ([]models.MarketplaceItem, error)
}

// TransferEngine executa a compra atômica de uma listagem.
type TransferEngine interface {
	Purchase(ctx context.Context, listingID, buyerID, orderID string) (models.Transaction, error)
}

// MarketHandler lida com as rotas do marketplace: vitrine, venda,
// cancelamento e captura de ordem.
type MarketHandler struct {
	Listings ListingManager
	Transfer TransferEngine
}

// NewMarketHandler cria o handler do marketplace.
func NewMarketHandler(listings ListingManager, transfer TransferEngine) *MarketHandler {
	return &MarketHandler{Listings: listings, Transfer: transfer}
}

// Marketplace devolve as listagens ativas, da mais recente para a mais antiga.
// GET /api/marketplace
func (h *MarketHandler) Marketplace(w http.ResponseWriter, r *http.Request) {
	items, err := h.Listings.Marketplace(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// Sell publica uma cor do usuário autenticado à venda.
// POST /api/market/sell
func (h *MarketHandler) Sell(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req struct {
		ColorID int             `json:"colorId"`
		Price   decimal.Decimal `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "corpo da requisição inválido"})
		return
	}

	listing, err := h.Listings.Create(r.Context(), userID, req.ColorID, req.Price)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"listing": listing,
	})
}

// Cancel encerra uma listagem ativa do usuário autenticado.
// POST /api/market/cancel
func (h *MarketHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req struct {
		ListingID string `json:"listingId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "corpo da requisição inválido"})
		return
	}

	if err := h.Listings.Cancel(r.Context(), userID, req.ListingID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// CaptureOrder captura a ordem PayPal do comprador e executa a transferência
// de posse. POST /api/market/capture-order
func (h *MarketHandler) CaptureOrder(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req struct {
		OrderID   string `json:"orderId"`
		ListingID string `json:"listingId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "corpo da requisição inválido"})
		return
	}
	if req.OrderID == "" || req.ListingID == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "orderId e listingId são obrigatórios"})
		return
	}

	record, err := h.Transfer.Purchase(r.Context(), req.ListingID, userID, req.OrderID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"transaction": record,
	})
}
