// Package apperr defines the business error taxonomy surfaced to API
// clients and its mapping onto HTTP status codes.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Error struct {
	Code    string // stable machine-readable code
	Message string
	Status  int
}

func (e *Error) Error() string { return e.Message }

func New(code, message string, status int) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

var (
	ErrValidation        = New("VALIDATION_ERROR", "invalid input", fiber.StatusBadRequest)
	ErrNotFound          = New("NOT_FOUND", "resource not found", fiber.StatusNotFound)
	ErrConflict          = New("CONFLICT", "resource already exists", fiber.StatusConflict)
	ErrInsufficientStock = New("INSUFFICIENT_STOCK", "insufficient stock", fiber.StatusBadRequest)
	ErrCouponExpired     = New("COUPON_EXPIRED", "coupon is not currently redeemable", fiber.StatusBadRequest)
	ErrCouponUsageLimit  = New("COUPON_USAGE_LIMIT", "coupon usage limit exceeded", fiber.StatusBadRequest)
	ErrCouponMinPurchase = New("COUPON_MIN_PURCHASE", "minimum purchase not met", fiber.StatusBadRequest)
	ErrUnauthorized      = New("UNAUTHORIZED", "authentication required", fiber.StatusUnauthorized)
	ErrForbidden         = New("FORBIDDEN", "access denied", fiber.StatusForbidden)
)

// Validation returns a field-specific variant of ErrValidation.
func Validation(format string, args ...any) *Error {
	return New(ErrValidation.Code, fmt.Sprintf(format, args...), fiber.StatusBadRequest)
}

// NotFound returns a resource-specific variant of ErrNotFound.
func NotFound(what string) *Error {
	return New(ErrNotFound.Code, what+" not found", fiber.StatusNotFound)
}

// Conflict returns a resource-specific variant of ErrConflict.
func Conflict(format string, args ...any) *Error {
	return New(ErrConflict.Code, fmt.Sprintf(format, args...), fiber.StatusConflict)
}

// Is treats two *Error values with the same code as equal, so
// errors.Is(apperr.NotFound("product"), apperr.ErrNotFound) holds.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// Status maps any error to an HTTP status, defaulting to 500.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return fiber.StatusInternalServerError
}

// Code extracts the machine-readable code, defaulting to INTERNAL.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "INTERNAL"
}
