// Package errors provides typed errors for the aether service.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for common error cases.
var (
	// ErrNotFound indicates a resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden indicates the caller may not use the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrInternal indicates an internal server error.
	ErrInternal = errors.New("internal error")

	// ErrRateLimit indicates too many requests.
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrDemoMode indicates operation not allowed in demo mode.
	ErrDemoMode = errors.New("operation not allowed in demo mode")
)

// AppError is a structured application error.
type AppError struct {
	// Type is the error type (sentinel error).
	Type error
	// Message is the user-facing error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error type.
func (e *AppError) Unwrap() error {
	return e.Type
}

// Is checks if this error matches the target.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Type, target)
}

// New creates a new AppError.
func New(errType error, message string) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
	}
}

// NotFound creates a not found error.
func NotFound(resource string) *AppError {
	return &AppError{
		Type:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// Forbidden creates a forbidden error.
func Forbidden(message string) *AppError {
	if message == "" {
		message = "access denied"
	}
	return &AppError{
		Type:    ErrForbidden,
		Message: message,
	}
}

// DemoMode creates an error for operations blocked in demo mode.
func DemoMode(message string) *AppError {
	if message == "" {
		message = ErrDemoMode.Error()
	}
	return &AppError{
		Type:    ErrDemoMode,
		Message: message,
	}
}

// Internal creates an internal error.
func Internal(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrInternal,
		Message: message,
		Cause:   cause,
	}
}

// Message returns the user-facing message of err. Errors that are not an
// AppError, and internal errors, never leak their text.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && !errors.Is(appErr.Type, ErrInternal) {
		return appErr.Message
	}
	return "internal server error"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrRateLimit):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrDemoMode):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
