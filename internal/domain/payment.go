package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is shared by Payment.Status and the mirrored Order.PaymentStatus.
type PaymentStatus string

// remember to add new statuses to the validPaymentStatuses map
const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

var validPaymentStatuses = map[PaymentStatus]struct{}{
	PaymentStatusUnpaid:   {},
	PaymentStatusPending:  {},
	PaymentStatusPaid:     {},
	PaymentStatusRefunded: {},
	PaymentStatusFailed:   {},
}

func ToPaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if _, ok := validPaymentStatuses[status]; ok {
		return status, nil
	}

	return "", fmt.Errorf("status[%s]: %w", s, ErrInvalidPaymentStatus)
}

// AcceptsNewPayment reports whether an order in this payment status may get another payment.
func (s PaymentStatus) AcceptsNewPayment() bool {
	return s == PaymentStatusUnpaid || s == PaymentStatusFailed
}

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodManual       PaymentMethod = "manual"
)

var validPaymentMethods = map[PaymentMethod]struct{}{
	PaymentMethodCash:         {},
	PaymentMethodCreditCard:   {},
	PaymentMethodBankTransfer: {},
	PaymentMethodManual:       {},
}

func ToPaymentMethod(s string) (PaymentMethod, error) {
	method := PaymentMethod(s)
	if _, ok := validPaymentMethods[method]; ok {
		return method, nil
	}

	return "", fmt.Errorf("method[%s]: %w", s, ErrInvalidPaymentMethod)
}

type Payment struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	Status        PaymentStatus
	Method        PaymentMethod
	Amount        Money
	PaidAt        *time.Time
	TransactionID string
	Notes         string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreatePaymentInput struct {
	OrderID       uuid.UUID
	Status        PaymentStatus
	Method        PaymentMethod
	Amount        decimal.Decimal
	PaidAt        *time.Time
	TransactionID string
	Notes         string
}

// Validate checks the input on its own; order-dependent rules live in the service.
func (in CreatePaymentInput) Validate() error {
	if _, err := ToPaymentStatus(string(in.Status)); err != nil {
		return err
	}
	if _, err := ToPaymentMethod(string(in.Method)); err != nil {
		return err
	}
	if err := ValidateAmount(in.Amount); err != nil {
		return err
	}
	if in.Status == PaymentStatusPaid && in.PaidAt == nil {
		return ErrMissingPaidAt
	}

	return nil
}

type UpdatePaymentInput struct {
	Status        *PaymentStatus
	Method        *PaymentMethod
	Amount        *decimal.Decimal
	PaidAt        *time.Time
	TransactionID *string
	Notes         *string
}

// Apply validates the patch against the current payment and returns the patched copy.
func (in UpdatePaymentInput) Apply(current Payment) (Payment, error) {
	next := current

	if in.Amount != nil {
		if err := ValidateAmount(*in.Amount); err != nil {
			return current, err
		}
		if current.Status == PaymentStatusPaid {
			return current, ErrImmutableAmount
		}
		next.Amount = Money{Amount: *in.Amount, Currency: current.Amount.Currency}
	}

	if in.Status != nil {
		status, err := ToPaymentStatus(string(*in.Status))
		if err != nil {
			return current, err
		}
		next.Status = status
	}

	if in.Method != nil {
		method, err := ToPaymentMethod(string(*in.Method))
		if err != nil {
			return current, err
		}
		next.Method = method
	}

	if in.PaidAt != nil {
		next.PaidAt = in.PaidAt
	}
	if in.TransactionID != nil {
		next.TransactionID = *in.TransactionID
	}
	if in.Notes != nil {
		next.Notes = *in.Notes
	}

	if next.Status == PaymentStatusPaid && next.PaidAt == nil {
		return current, ErrMissingPaidAt
	}

	return next, nil
}
