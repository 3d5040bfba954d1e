package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// User errors
	ErrUserNotFound       = NewDomainError("USER_NOT_FOUND", "user not found")
	ErrEmailExists        = NewDomainError("EMAIL_EXISTS", "email already exists")
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "invalid credentials")
	ErrSelfDeletion       = NewDomainError("SELF_DELETION", "users cannot delete themselves")
	ErrUserDisabled       = NewDomainError("USER_DISABLED", "user is disabled")

	// Article errors
	ErrArticleNotFound = NewDomainError("ARTICLE_NOT_FOUND", "article not found")
	ErrSlugExists      = NewDomainError("SLUG_EXISTS", "article slug already exists")

	// Coupon errors
	ErrCouponNotFound     = NewDomainError("COUPON_NOT_FOUND", "coupon not found")
	ErrCouponRange        = NewDomainError("COUPON_RANGE_INVALID", "coupon expire time must be after start time")
	ErrCouponQuantity     = NewDomainError("COUPON_QUANTITY_INVALID", "coupon quantity must be between 1 and 1000")
	ErrCouponRedeemed     = NewDomainError("COUPON_REDEEMED", "coupon has already been redeemed")
	ErrCouponNotAvailable = NewDomainError("COUPON_NOT_AVAILABLE", "coupon is not available at this time")

	// Address errors
	ErrAddressNotFound = NewDomainError("ADDRESS_NOT_FOUND", "address not found")

	// Authentication errors
	ErrUnauthorized = NewDomainError("UNAUTHORIZED", "unauthorized")
	ErrInvalidToken = NewDomainError("INVALID_TOKEN", "invalid or expired token")
	ErrTokenExpired = NewDomainError("TOKEN_EXPIRED", "token has expired")

	// Validation errors
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "invalid input")
	ErrInvalidID    = NewDomainError("INVALID_ID", "invalid id")

	// System errors
	ErrInternal           = NewDomainError("INTERNAL_ERROR", "internal server error")
	ErrServiceUnavailable = NewDomainError("SERVICE_UNAVAILABLE", "service unavailable")
)

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	// Check if it's a domain error
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	// Default to internal server error for unknown errors
	return http.StatusInternalServerError
}

// domainErrorToHTTPStatus maps specific domain errors to HTTP status codes
func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case "INVALID_INPUT", "INVALID_ID", "COUPON_RANGE_INVALID", "COUPON_QUANTITY_INVALID":
		return http.StatusBadRequest

	// 401 Unauthorized
	case "UNAUTHORIZED", "INVALID_CREDENTIALS", "INVALID_TOKEN",
		"TOKEN_EXPIRED":
		return http.StatusUnauthorized

	// 403 Forbidden
	case "SELF_DELETION", "USER_DISABLED":
		return http.StatusForbidden

	// 404 Not Found
	case "USER_NOT_FOUND", "ARTICLE_NOT_FOUND", "COUPON_NOT_FOUND", "ADDRESS_NOT_FOUND":
		return http.StatusNotFound

	// 409 Conflict
	case "EMAIL_EXISTS", "SLUG_EXISTS", "COUPON_REDEEMED":
		return http.StatusConflict

	// 422 Unprocessable Entity
	case "COUPON_NOT_AVAILABLE":
		return http.StatusUnprocessableEntity

	// 503 Service Unavailable
	case "SERVICE_UNAVAILABLE":
		return http.StatusServiceUnavailable

	// 500 Internal Server Error (default)
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
