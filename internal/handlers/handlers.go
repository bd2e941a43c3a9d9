package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Premgrohit45/pay-my-bill-pmb/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// serviceError maps the service sentinels onto HTTP status codes.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, services.ErrInvalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
