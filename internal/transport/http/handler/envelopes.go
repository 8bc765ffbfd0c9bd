package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-users-api/internal/domain"
)

// MessageEnvelope wraps plain informational responses.
type MessageEnvelope struct {
	Message string `json:"message"`
}

// ErrorEnvelope wraps error responses.
type ErrorEnvelope struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps domain errors to HTTP statuses. Unknown errors are
// logged and reported as a generic 500 so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeJSON(w, http.StatusBadRequest, ErrorEnvelope{Error: err.Error()})
	case errors.Is(err, domain.ErrExpired):
		writeJSON(w, http.StatusGone, ErrorEnvelope{Error: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, ErrorEnvelope{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorEnvelope{Error: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, ErrorEnvelope{Error: err.Error()})
	default:
		slog.Error("unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorEnvelope{Error: "internal server error"})
	}
}
