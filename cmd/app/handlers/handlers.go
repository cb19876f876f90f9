// Package handlers provides the local REST API for the app session.
package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/liftbook/liftbook/internal/errors"
)

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError writes a structured error response. AppError codes are
// exposed so the UI can branch on them.
func writeError(w http.ResponseWriter, status int, err error) {
	code := apperrors.ErrInternal
	if appErr, ok := err.(*apperrors.AppError); ok {
		code = appErr.Code
	}
	writeJSON(w, status, map[string]string{
		"code":  string(code),
		"error": err.Error(),
	})
}

// methodNotAllowed writes the standard 405 response.
func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}
