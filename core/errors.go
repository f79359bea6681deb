package core

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for comparison using errors.Is()
// These are generic errors that can be wrapped with additional context
var (
	// Session-related errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrSessionMissing = errors.New("no session found")

	// Validation errors (client-side, no network call was made)
	ErrValidation = errors.New("validation failed")

	// Cart/order errors
	ErrEmptyCart       = errors.New("cart is empty")
	ErrOutOfStock      = errors.New("product out of stock")
	ErrStockExceeded   = errors.New("quantity exceeds available stock")
	ErrOrderNotCreated = errors.New("order creation failed")

	// HTTP/Network errors
	ErrConnectionFailed = errors.New("connection failed")
	ErrRequestFailed    = errors.New("request failed")
	ErrNotFound         = errors.New("resource not found")
	ErrServerError      = errors.New("server error")

	// Operation errors
	ErrTimeout            = errors.New("operation timeout")
	ErrMaxRetriesExceeded = errors.New("maximum retries exceeded")
)

// ClientError provides structured error information with context.
// It implements the error interface and supports error wrapping.
type ClientError struct {
	Op      string // Operation that failed (e.g., "cart.AddItem")
	Kind    string // Error kind (e.g., "auth", "validation", "network")
	ID      string // Optional ID of the entity involved
	Message string // Human-readable message
	Err     error  // Underlying error for wrapping
}

// Error returns the string representation of the error. Message wins when
// present: it is the user-facing toast text.
func (e *ClientError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Op != "" && e.Err != nil {
		if e.ID != "" {
			return fmt.Sprintf("%s [%s]: %v", e.Op, e.ID, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s error", e.Kind)
}

// Unwrap returns the underlying error for use with errors.Is/As
func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewClientError creates a new ClientError
func NewClientError(op, kind string, err error) *ClientError {
	return &ClientError{
		Op:   op,
		Kind: kind,
		Err:  err,
	}
}

// ValidationError creates a validation ClientError with a user-facing message.
// Validation failures block the action before any network call.
func ValidationError(op, message string) *ClientError {
	return &ClientError{
		Op:      op,
		Kind:    "validation",
		Message: message,
		Err:     ErrValidation,
	}
}

// IsUnauthorized checks whether an error should tear the session down.
// Both 401 and 422 responses from the backend map here; neither is retried.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsValidation checks if an error is a client-side validation failure
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsRetryable checks if an error is retryable.
// Retryable errors are transient network or availability issues; auth and
// validation failures never are.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConnectionFailed) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrServerError)
}

// IsNotFound checks if an error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
