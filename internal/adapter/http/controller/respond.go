package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/api-sage/bank-ledger/internal/commons"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusForError maps the domain error taxonomy onto HTTP statuses. Anything
// unrecognized is an opaque infrastructure failure.
func statusForError(err error, message string) int {
	switch {
	case errors.Is(err, commons.ErrAccountNotFound),
		errors.Is(err, commons.ErrAccountNotFoundByNumber),
		errors.Is(err, commons.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, commons.ErrInvalidInitialBalance),
		errors.Is(err, commons.ErrInvalidAmount),
		errors.Is(err, commons.ErrInsufficientBalance):
		return http.StatusBadRequest
	case errors.Is(err, commons.ErrEmailAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, commons.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}

	if message == "validation failed" {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func requireCustomerID(w http.ResponseWriter, ok bool) bool {
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}
