// Package handlers provides HTTP handlers for the aether service.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	apperrors "aether/internal/errors"
)

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps err to its HTTP status and writes it as JSON. Server
// errors are logged; their text never reaches the client.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	if apperrors.HTTPStatus(err) >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("Request failed")
	}
	apperrors.WriteJSON(w, err)
}
