package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/backoffice/internal/domain"
)

type PaymentRepository interface {
	GetPayment(ctx context.Context, paymentID uuid.UUID) (domain.Payment, error)
	GetPaymentForUpdate(ctx context.Context, paymentID uuid.UUID) (domain.Payment, error)
	ListOrderPayments(ctx context.Context, orderID uuid.UUID) ([]domain.Payment, error)

	InsertPayment(ctx context.Context, payment domain.Payment) (domain.Payment, error)
	UpdatePayment(ctx context.Context, payment domain.Payment) (domain.Payment, error)
	DeletePayment(ctx context.Context, paymentID uuid.UUID) error
}
