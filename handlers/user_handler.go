package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ferreirogomes/colorverse/auth"
	"github.com/ferreirogomes/colorverse/models"
	"github.com/ferreirogomes/colorverse/shared"
)

// AccountService é o recorte do service de usuários usado neste handler.
type AccountService interface {
	Colors(ctx context.Context, userID string) ([]models.Color, error)
	RenameColor(ctx context.Context, userID string, colorID int, name string) (models.Color, error)
	PayPalStatus(ctx context.Context, userID string) (bool, error)
}

// UserHandler lida com as rotas do usuário autenticado.
type UserHandler struct {
	Users AccountService
}

// NewUserHandler cria o handler de usuários.
func NewUserHandler(users AccountService) *UserHandler {
	return &UserHandler{Users: users}
}

// MyColors lista as cores do usuário autenticado, ordenadas por id.
// GET /api/user/colors
func (h *UserHandler) MyColors(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	colors, err := h.Users.Colors(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, colors)
}

// RenameColor altera o nome de exibição de uma cor do usuário.
// PATCH /api/user/colors/{id}
func (h *UserHandler) RenameColor(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	colorID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || colorID < 0 || colorID > models.MaxColorID {
		respondError(w, shared.ErrNotFound)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "corpo da requisição inválido"})
		return
	}

	color, err := h.Users.RenameColor(r.Context(), userID, colorID, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, color)
}

// Status informa se o usuário já vinculou a conta de recebimento PayPal.
// GET /api/user/status
func (h *UserHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	connected, err := h.Users.PayPalStatus(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"paypalConnected": connected})
}
