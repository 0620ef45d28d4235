package handlers

import (
	"context"
	"net/http"

	"github.com/ferreirogomes/colorverse/auth"
)

// Onboarder é o recorte do service de usuários para o onboarding PayPal.
type Onboarder interface {
	ConnectURL(userID string) string
	SyncMerchant(ctx context.Context, userID string) error
}

// PayPalHandler lida com o vínculo da conta de recebimento do vendedor.
type PayPalHandler struct {
	Users Onboarder
}

// NewPayPalHandler cria o handler de onboarding PayPal.
func NewPayPalHandler(users Onboarder) *PayPalHandler {
	return &PayPalHandler{Users: users}
}

// ConnectURL gera o link de inscrição de parceiro para o usuário autenticado.
// GET /api/paypal/connect-url
func (h *PayPalHandler) ConnectURL(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{
		"connectUrl": h.Users.ConnectURL(userID),
	})
}

// Sync consulta o PayPal pelo tracking id do usuário e grava o merchant id.
// Chamado quando o onboarding retorna ao dashboard.
// POST /api/paypal/sync
func (h *PayPalHandler) Sync(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := h.Users.SyncMerchant(r.Context(), userID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
