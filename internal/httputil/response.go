package httputil

import (
	"encoding/json"
	"net/http"
)

// Error types used in the platform's error envelope.
const (
	TypeBadRequest   = "bad_request"
	TypeUnauthorized = "unauthorized"
	TypeNotFound     = "not_found"
	TypeConflict     = "conflict"
	TypeInternal     = "internal_error"
)

// ErrorResponse is the envelope the platform returns on non-2xx responses:
// {"message": "...", "code": 404, "type": "not_found"}
type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		// Headers are already sent; nothing useful left to do on failure.
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes the platform error envelope.
func WriteError(w http.ResponseWriter, status int, errType, message string) {
	WriteJSON(w, status, ErrorResponse{
		Message: message,
		Code:    status,
		Type:    errType,
	})
}

// WriteUnauthorized is a shorthand for the common 401 shape.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, TypeUnauthorized, message)
}
