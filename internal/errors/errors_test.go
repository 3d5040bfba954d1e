package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"user not found", ErrUserNotFound, http.StatusNotFound},
		{"coupon not found wrapped", WrapError(ErrCouponNotFound, errors.New("record not found")), http.StatusNotFound},
		{"coupon range", ErrCouponRange, http.StatusBadRequest},
		{"self deletion", ErrSelfDeletion, http.StatusForbidden},
		{"already redeemed", ErrCouponRedeemed, http.StatusConflict},
		{"not available", ErrCouponNotAvailable, http.StatusUnprocessableEntity},
		{"invalid token", ErrInvalidToken, http.StatusUnauthorized},
		{"wrapped with fmt", fmt.Errorf("delete: %w", ErrAddressNotFound), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToHTTPStatus(tt.err); got != tt.want {
				t.Errorf("ToHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetErrorMessage(t *testing.T) {
	wrapped := WrapError(ErrUserNotFound, errors.New("record not found"))

	if got := GetErrorMessage(wrapped); got != "user not found" {
		t.Errorf("Expected domain message, got %q", got)
	}
	if got := GetErrorMessage(errors.New("boom")); got != "boom" {
		t.Errorf("Expected raw message, got %q", got)
	}
	if !errors.Is(wrapped, wrapped.Err) {
		t.Error("Expected wrapped error to unwrap")
	}
}
