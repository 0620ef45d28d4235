package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ferreirogomes/colorverse/models"
)

// Registrar é o recorte do service de usuários usado neste handler.
type Registrar interface {
	Register(ctx context.Context, username, email, password string) (models.User, models.Color, error)
}

// Authenticator valida credenciais e emite tokens de sessão.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler lida com registro e login.
type AuthHandler struct {
	Users Registrar
	Auth  Authenticator
}

// NewAuthHandler cria o handler de autenticação.
func NewAuthHandler(users Registrar, authSvc Authenticator) *AuthHandler {
	return &AuthHandler{Users: users, Auth: authSvc}
}

// Register cria a conta e concede a cor inicial.
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "corpo da requisição inválido"})
		return
	}

	user, color, err := h.Users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"user": map[string]string{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
		"color_hex": color.HexCode,
	})
}

// Login verifica credenciais e devolve o token de sessão.
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "corpo da requisição inválido"})
		return
	}

	token, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}
