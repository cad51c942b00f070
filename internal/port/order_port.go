package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/backoffice/internal/domain"
)

type OrderRepository interface {
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	// GetOrderForUpdate locks the order row until the surrounding transaction ends.
	GetOrderForUpdate(ctx context.Context, orderID uuid.UUID) (domain.Order, error)

	SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)

	InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	InsertOrderItem(ctx context.Context, item domain.OrderItem) (domain.OrderItem, error)

	UpdateOrder(ctx context.Context, order domain.Order) error
	UpdateOrderTotals(ctx context.Context, order domain.Order) error
	UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status domain.PaymentStatus) error
}
