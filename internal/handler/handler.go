// Package handler implements the HTTP layer of the API: request decoding,
// response shaping, and the mapping from service errors to status codes.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/foodgram/foodgram/internal/handler/dto"
)

// Handler serves the root info endpoint and the router fallbacks.
type Handler struct{}

// New creates a Handler.
func New() *Handler {
	return &Handler{}
}

// Hello identifies the service.
// GET /
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Foodgram API",
		"version": "1.0.0",
	})
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, dto.ErrorDetail{Detail: "Страница не найдена."})
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, dto.ErrorDetail{Detail: "Метод не разрешен."})
}

// writeJSON writes a JSON response with the given status code.
// Encode errors after WriteHeader cannot be reported to the client.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeDetail writes a {"detail": ...} error response.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, dto.ErrorDetail{Detail: detail})
}

// writeErrors writes a {"errors": ...} validation error response.
func writeErrors(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorList{Errors: message})
}
