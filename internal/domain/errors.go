package domain

import (
	"errors"
	"net/http"
)

var ErrNotFound = errors.New("record not found")
var ErrNotUnique = errors.New("record not unique")

// DetailEntry is one structured item describing a specific violation or
// failure cause. Common keys are "field", "code", "message", "value" and
// "reason"; the exact shape depends on the caller.
type DetailEntry map[string]any

// DomainError is an application level failure that carries everything the
// API needs to render it: an HTTP status code, a stable machine-readable
// code, a human-readable message and an optional list of detail entries.
// Instances are created through the constructors below and are not modified
// after construction.
type DomainError struct {
	StatusCode int
	Code       string
	Message    string
	Details    []DetailEntry

	cause error
}

func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the wrapped collaborator error, if any.
// This keeps errors.Is(err, domain.ErrNotFound) working across wrap helpers.
func (e *DomainError) Unwrap() error {
	return e.cause
}

// AsDomainError reports whether err is (or wraps) a recognized DomainError.
func AsDomainError(err error) (*DomainError, bool) {
	var dErr *DomainError
	if errors.As(err, &dErr) {
		return dErr, true
	}
	return nil, false
}

// NewDomainError creates a new error with the given status code, message,
// code and details. The details slice is copied so that later mutations by
// the caller do not leak into the error; a nil slice becomes an empty one.
func NewDomainError(statusCode int, message, code string, details []DetailEntry) *DomainError {
	copied := make([]DetailEntry, len(details))
	copy(copied, details)

	return &DomainError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
		Details:    copied,
	}
}

// NewValidationError creates a generic validation failure (HTTP 400).
func NewValidationError(details []DetailEntry) *DomainError {
	return NewDomainError(http.StatusBadRequest, "validation failed", "VALIDATION_ERROR", details)
}

// NewInvalidCategoryData creates a validation failure for category input.
func NewInvalidCategoryData(details []DetailEntry) *DomainError {
	return NewDomainError(http.StatusBadRequest, "invalid category data provided", "INVALID_CATEGORY_DATA", details)
}

// NewInvalidExpenseData creates a validation failure for expense input.
func NewInvalidExpenseData(details []DetailEntry) *DomainError {
	return NewDomainError(http.StatusBadRequest, "invalid expense data provided", "INVALID_EXPENSE_DATA", details)
}

// NewInvalidReceipt creates a validation failure for a receipt upload.
func NewInvalidReceipt(details []DetailEntry) *DomainError {
	return NewDomainError(http.StatusBadRequest, "invalid receipt provided", "INVALID_RECEIPT", details)
}

// NewUnauthorized creates an authentication/tenancy failure (HTTP 401).
func NewUnauthorized(details []DetailEntry) *DomainError {
	return NewDomainError(http.StatusUnauthorized, "unauthorized access", "UNAUTHORIZED", details)
}

// NewNotFoundError creates a resource specific not-found failure (HTTP 404).
// The returned error matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message, code string, details []DetailEntry) *DomainError {
	err := NewDomainError(http.StatusNotFound, message, code, details)
	err.cause = ErrNotFound
	return err
}

// WrapError converts a collaborator failure into a DomainError with the
// given status, message and code. The original error message is preserved
// in the details. If err already is a recognized DomainError it is returned
// unchanged, status code and details intact.
func WrapError(err error, statusCode int, message, code string) *DomainError {
	if dErr, ok := AsDomainError(err); ok {
		return dErr
	}

	reason := "unknown reason"
	if err != nil {
		reason = err.Error()
	}

	wrapped := NewDomainError(statusCode, message, code, []DetailEntry{{"reason": reason}})
	wrapped.cause = err
	return wrapped
}
