package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

var (
	ErrProductNotFound   = fmt.Errorf("product %w", ErrNotFound)
	ErrInventoryNotFound = fmt.Errorf("inventory %w", ErrNotFound)
	ErrOrderNotFound     = fmt.Errorf("order %w", ErrNotFound)
	ErrPaymentNotFound   = fmt.Errorf("payment %w", ErrNotFound)
	ErrJobNotFound       = fmt.Errorf("job %w", ErrNotFound)
	ErrSettingNotFound   = fmt.Errorf("setting %w", ErrNotFound)
)

var (
	ErrProductNotActive        = errors.New("product is not active")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrInvalidQuantity         = errors.New("quantity must be between 1 and 2147483647")
	ErrCurrencyMismatch        = errors.New("currency mismatch")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrOrderNumberCollision    = errors.New("order number collision")
	ErrOrderNotEditable        = errors.New("order is not editable")

	ErrDuplicatePayment     = errors.New("order already has a payment")
	ErrOrderCancelled       = errors.New("order is cancelled")
	ErrInvalidAmount        = errors.New("amount must be a positive whole-cent value below 100000000")
	ErrMissingPaidAt        = errors.New("paidAt is required for paid payment")
	ErrImmutableAmount      = errors.New("cannot update amount for paid payment")
	ErrOrderActive          = errors.New("cannot delete payment for active order")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// ValidationError reports malformed input that no sentinel describes.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
