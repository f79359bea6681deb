package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestClientErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *ClientError
		want string
	}{
		{
			name: "op with wrapped error",
			err:  &ClientError{Op: "cart.AddItem", Err: ErrStockExceeded},
			want: "cart.AddItem: quantity exceeds available stock",
		},
		{
			name: "op with id",
			err:  &ClientError{Op: "cart.AddItem", ID: "42", Err: ErrOutOfStock},
			want: "cart.AddItem [42]: product out of stock",
		},
		{
			name: "message only",
			err:  &ClientError{Message: "please enter delivery address"},
			want: "please enter delivery address",
		},
		{
			name: "kind fallback",
			err:  &ClientError{Kind: "network"},
			want: "network error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClientErrorUnwrap(t *testing.T) {
	err := NewClientError("session.Require", "auth", ErrUnauthorized)
	if !errors.Is(err, ErrUnauthorized) {
		t.Error("expected errors.Is to see through ClientError")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !IsUnauthorized(wrapped) {
		t.Error("expected IsUnauthorized through double wrapping")
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		retryable   bool
		validation  bool
		unauthorized bool
	}{
		{"connection failure", ErrConnectionFailed, true, false, false},
		{"server error", NewClientError("products.List", "server", ErrServerError), true, false, false},
		{"timeout", ErrTimeout, true, false, false},
		{"unauthorized", ErrUnauthorized, false, false, true},
		{"validation", ValidationError("checkout.PlaceOrder", "cart empty"), false, true, false},
		{"stock bound", fmt.Errorf("add: %w", ErrStockExceeded), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.retryable {
				t.Errorf("IsRetryable = %v, want %v", got, tt.retryable)
			}
			if got := IsValidation(tt.err); got != tt.validation {
				t.Errorf("IsValidation = %v, want %v", got, tt.validation)
			}
			if got := IsUnauthorized(tt.err); got != tt.unauthorized {
				t.Errorf("IsUnauthorized = %v, want %v", got, tt.unauthorized)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError("reservation.Step1", "reservation date must be in the future")
	if err.Error() != "reservation date must be in the future" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !IsValidation(err) {
		t.Error("expected validation classification")
	}
}
