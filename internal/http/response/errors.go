package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Suyash1602/airBNB-clone/internal/domain"
	"github.com/Suyash1602/airBNB-clone/pkg/logger"
)

// ErrorResponse represents a structured JSON error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Common error codes
const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeEmailExists   = "EMAIL_EXISTS"
	CodeInvalidLogin  = "INVALID_CREDENTIALS"
	CodeInternalError = "INTERNAL_ERROR"
)

// WriteError writes a structured JSON error response
func WriteError(w http.ResponseWriter, statusCode int, message string, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errResp := ErrorResponse{
		Error: message,
		Code:  code,
	}

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message, CodeUnauthorized)
}

func Forbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, message, CodeForbidden)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, CodeNotFound)
}

func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message, CodeInternalError)
}

func Conflict(w http.ResponseWriter, message, code string) {
	WriteError(w, http.StatusConflict, message, code)
}

// DomainError maps the service error taxonomy onto HTTP statuses. Every
// authorization decision surfaces here with an explicit response; nothing
// is silently dropped.
func DomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		Conflict(w, "email already registered", CodeEmailExists)
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, "invalid email or password", CodeInvalidLogin)
	case errors.Is(err, domain.ErrUnauthenticated):
		Unauthorized(w, "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		Forbidden(w, "you do not own this resource")
	case errors.Is(err, domain.ErrNotFound):
		NotFound(w, "resource not found")
	case errors.Is(err, domain.ErrMalformed):
		BadRequest(w, err.Error())
	default:
		InternalError(w, "internal error")
	}
}

// WriteJSON writes a JSON response body with the given status
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}
