package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ferreirogomes/colorverse/shared"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError traduz os erros sentinela do núcleo para códigos HTTP.
// Erros não mapeados viram 500 genérico, sem vazar detalhe interno.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrValidation), errors.Is(err, shared.ErrInvalidPrice):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, shared.ErrInvalidCredentials), errors.Is(err, shared.ErrInvalidToken):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, shared.ErrPaymentNotCompleted):
		respondJSON(w, http.StatusPaymentRequired, errorResponse{Error: err.Error()})
	case errors.Is(err, shared.ErrNotOwner), errors.Is(err, shared.ErrSelfPurchase):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, shared.ErrNotFound), errors.Is(err, shared.ErrListingUnavailable):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, shared.ErrAlreadyListed),
		errors.Is(err, shared.ErrAlreadyClosed),
		errors.Is(err, shared.ErrDuplicateUser),
		errors.Is(err, shared.ErrListingAlreadySold):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, shared.ErrOrderFailedAfterCapture):
		// O comprador precisa de um desfecho claro: pagou, mas a compra não
		// se concretizou e o valor será estornado.
		respondJSON(w, http.StatusBadGateway, errorResponse{Error: shared.ErrOrderFailedAfterCapture.Error()})
	default:
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Ocorreu um erro interno."})
	}
}
