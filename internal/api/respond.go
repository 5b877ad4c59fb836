package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"connectrealm/internal/store"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respond(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			log.Error().Err(err).Msg("Failed to encode response")
		}
	}
}

func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// respondServiceError maps the shared error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a 500 with a generic body so internal
// detail never leaks to clients.
func respondServiceError(w http.ResponseWriter, err error) {
	classified := store.Classify(err)
	switch {
	case errors.Is(classified, store.ErrAuthRequired):
		respondError(w, "authentication required", http.StatusUnauthorized)
	case errors.Is(classified, store.ErrUnauthorized),
		errors.Is(classified, store.ErrAccessDenied):
		respondError(w, "not authorized", http.StatusForbidden)
	case errors.Is(classified, store.ErrNotFound):
		respondError(w, "not found", http.StatusNotFound)
	case errors.Is(classified, store.ErrConflict):
		respondError(w, "already exists", http.StatusConflict)
	case errors.Is(classified, store.ErrInvalidOperation):
		respondError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(classified, store.ErrTransport):
		respondError(w, "upstream unavailable", http.StatusBadGateway)
	default:
		log.Error().Err(err).Msg("Unhandled service error")
		respondError(w, "internal error", http.StatusInternalServerError)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
