package domain

import (
	"errors"
	"fmt"
)

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// All ledger errors are local and recoverable. Validation failures wrap
// ErrValidation so callers can branch on the category.

var (
	// ErrValidation is the category for bad or missing input.
	ErrValidation = errors.New("validation failed")

	// Input errors
	ErrMissingAddress       = fmt.Errorf("%w: delivery address is required", ErrValidation)
	ErrMissingPaymentMethod = fmt.Errorf("%w: payment method is required", ErrValidation)
	ErrInvalidPoints        = fmt.Errorf("%w: points must be a positive whole number", ErrValidation)
	ErrInvalidOrderType     = fmt.Errorf("%w: unknown order type", ErrValidation)
	ErrInvalidItem          = fmt.Errorf("%w: item needs a name, a price of zero or more and a quantity of at least one", ErrValidation)
	ErrInvalidReservation   = fmt.Errorf("%w: reservation is incomplete or invalid", ErrValidation)

	// Ledger state errors
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNotFound           = errors.New("not found")
)
