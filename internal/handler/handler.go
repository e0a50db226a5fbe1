// Package handler provides HTTP request handlers for the cinema services.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/cinebook/cinebook/internal/httperr"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Response already committed; nothing useful left to do
		_ = err
	}
}

// writeError maps err through the error taxonomy and writes the envelope.
func writeError(w http.ResponseWriter, err error) {
	herr := httperr.From(err)
	writeJSON(w, herr.Status, map[string]string{"error": herr.Message})
}

// NotFound handles 404 responses for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "resource not found"})
}

// MethodNotAllowed handles 405 responses.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}

// discovery is the shape of each service's root document.
type discovery struct {
	URI             string            `json:"uri"`
	SubresourceURIs map[string]string `json:"subresource_uris"`
}
