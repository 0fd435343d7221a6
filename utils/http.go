package utils

import (
	"encoding/json"
	"net/http"

	"github.com/baristalab/drinks-api/auth0"
)

// AuthErrorResponse is the boundary shape for authorization failures
type AuthErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the boundary shape for non-auth failures (no code field)
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteAuthError writes an authorization failure using its own status code
func WriteAuthError(w http.ResponseWriter, authErr *auth0.AuthError) error {
	return WriteJSON(w, authErr.StatusCode, AuthErrorResponse{
		Success: false,
		Error:   authErr.StatusCode,
		Code:    authErr.Code,
		Message: authErr.Description,
	})
}

// WriteBadRequest writes a 400 Bad Request response
func WriteBadRequest(w http.ResponseWriter) error {
	return writeError(w, http.StatusBadRequest, "bad request")
}

// WriteNotFound writes a 404 Not Found response
func WriteNotFound(w http.ResponseWriter) error {
	return writeError(w, http.StatusNotFound, "resource not found")
}

// WriteUnprocessable writes a 422 Unprocessable Entity response
func WriteUnprocessable(w http.ResponseWriter) error {
	return writeError(w, http.StatusUnprocessableEntity, "unprocessable entity")
}

// WriteInternalServerError writes a 500 Internal Server Error response
func WriteInternalServerError(w http.ResponseWriter) error {
	return writeError(w, http.StatusInternalServerError, "internal server error")
}

func writeError(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, ErrorResponse{
		Success: false,
		Error:   status,
		Message: message,
	})
}
