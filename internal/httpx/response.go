// Package httpx provides the JSON response envelope shared by all HTTP
// handlers.
package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorDetail contains error information rendered to API clients.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

type errorBody struct {
	Error *ErrorDetail `json:"error"`
}

// JSON writes v as a JSON body with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a structured error body with the given status code.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, errorBody{Error: &ErrorDetail{Code: code, Message: message}})
}

// ValidationError writes a 400 response carrying per-field violation
// messages.
func ValidationError(w http.ResponseWriter, details map[string][]string) {
	JSON(w, http.StatusBadRequest, errorBody{Error: &ErrorDetail{
		Code:    "validation_error",
		Message: "request validation failed",
		Details: details,
	}})
}
