package apperror

import "net/http"

// AppError is the single tagged error type used across domains.
// It carries the HTTP status the terminal response mapping should use,
// a stable machine-readable code, and optional structured details
// (for validation errors, a field->message map).
type AppError struct {
	Status  int
	Code    string
	Message string
	Details interface{}
}

func (e *AppError) Error() string {
	return e.Message
}

// WithDetails returns a copy carrying structured details. The receiver is
// not mutated so package-level sentinel errors stay comparable.
func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func New(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, "BAD_REQUEST", message)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, "FORBIDDEN", message)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, "NOT_FOUND", message)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, "CONFLICT", message)
}

func Internal(message string) *AppError {
	return New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}

// Gateway marks upstream payment-provider failures. Surfaced as 502
// so clients can distinguish "we broke" from "the provider broke".
func Gateway(message string) *AppError {
	return New(http.StatusBadGateway, "GATEWAY_ERROR", message)
}
