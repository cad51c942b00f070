package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/backoffice/internal/domain"
	"github.com/nikolayk812/backoffice/internal/events"
	"github.com/nikolayk812/backoffice/internal/port"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const paymentEntity = "payment"

// PaymentService keeps Order.PaymentStatus equal to the status of the order's latest payment.
type PaymentService struct {
	transactor port.Transactor
	orders     port.OrderRepository
	payments   port.PaymentRepository
	emitter    events.Emitter
	logger     *zap.Logger
	tracer     trace.Tracer
}

func NewPaymentService(
	transactor port.Transactor,
	orders port.OrderRepository,
	payments port.PaymentRepository,
	emitter events.Emitter,
	logger *zap.Logger,
	tracer trace.Tracer,
) *PaymentService {
	return &PaymentService{
		transactor: transactor,
		orders:     orders,
		payments:   payments,
		emitter:    emitter,
		logger:     logger,
		tracer:     tracer,
	}
}

// CreatePayment inserts the payment and mirrors its status onto the order.
// If persisting fails after the order checks passed, the order is marked failed
// outside the rolled back transaction and the original error is returned.
func (s *PaymentService) CreatePayment(ctx context.Context, actorID uuid.UUID, in domain.CreatePaymentInput) (_ domain.Payment, err error) {
	ctx, span := s.tracer.Start(ctx, "PaymentService.CreatePayment")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.String("order.id", in.OrderID.String()))

	var (
		created   domain.Payment
		persisted bool
	)

	err = s.transactor.WithinTx(ctx, func(repos port.Repositories) error {
		order, err := repos.Orders.GetOrderForUpdate(ctx, in.OrderID)
		if err != nil {
			return fmt.Errorf("orders.GetOrderForUpdate: %w", err)
		}

		if !order.PaymentStatus.AcceptsNewPayment() {
			return fmt.Errorf("order[%s] payment status[%s]: %w", order.OrderNumber, order.PaymentStatus, domain.ErrDuplicatePayment)
		}
		if order.Status == domain.OrderStatusCancelled {
			return fmt.Errorf("order[%s]: %w", order.OrderNumber, domain.ErrOrderCancelled)
		}
		if err := in.Validate(); err != nil {
			return fmt.Errorf("in.Validate: %w", err)
		}

		persisted = true

		created, err = repos.Payments.InsertPayment(ctx, domain.Payment{
			OrderID:       order.ID,
			Status:        in.Status,
			Method:        in.Method,
			Amount:        domain.NewMoney(in.Amount, order.Currency()),
			PaidAt:        in.PaidAt,
			TransactionID: in.TransactionID,
			Notes:         in.Notes,
		})
		if err != nil {
			return fmt.Errorf("payments.InsertPayment: %w", err)
		}

		if err := repos.Orders.UpdatePaymentStatus(ctx, order.ID, created.Status); err != nil {
			return fmt.Errorf("orders.UpdatePaymentStatus: %w", err)
		}

		return nil
	})
	if err != nil {
		if persisted {
			s.markOrderPaymentFailed(ctx, in.OrderID, err)
		}
		return domain.Payment{}, fmt.Errorf("transactor.WithinTx: %w", err)
	}

	span.SetAttributes(attribute.String("payment.id", created.ID.String()))

	s.logger.Info("payment created",
		zap.String("method", "CreatePayment"),
		zap.String("payment_id", created.ID.String()),
		zap.String("order_id", created.OrderID.String()),
		zap.String("status", string(created.Status)),
	)

	s.emitter.Audit(ctx, events.AuditRecord{
		Entity:   paymentEntity,
		EntityID: created.ID,
		Action:   events.AuditActionCreate,
		ActorID:  actorID,
		After:    events.Snapshot(created),
	})

	return created, nil
}

func (s *PaymentService) markOrderPaymentFailed(ctx context.Context, orderID uuid.UUID, cause error) {
	if err := s.orders.UpdatePaymentStatus(ctx, orderID, domain.PaymentStatusFailed); err != nil {
		s.logger.Error("failed to mark order payment failed",
			zap.String("method", "CreatePayment"),
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
	}

	s.emitter.Notify(ctx, events.Notification{
		Type:     events.NotificationFailedPayment,
		EntityID: orderID,
		Message:  fmt.Sprintf("payment for order %s failed", orderID),
		Data: map[string]any{
			"error": cause.Error(),
		},
	})
}

func (s *PaymentService) GetPayment(ctx context.Context, paymentID uuid.UUID) (_ domain.Payment, err error) {
	ctx, span := s.tracer.Start(ctx, "PaymentService.GetPayment")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.String("payment.id", paymentID.String()))

	payment, err := s.payments.GetPayment(ctx, paymentID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("payments.GetPayment: %w", err)
	}

	return payment, nil
}

// ListOrderPayments returns the order's payments, latest first.
func (s *PaymentService) ListOrderPayments(ctx context.Context, orderID uuid.UUID) (_ []domain.Payment, err error) {
	ctx, span := s.tracer.Start(ctx, "PaymentService.ListOrderPayments")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.String("order.id", orderID.String()))

	if _, err := s.orders.GetOrder(ctx, orderID); err != nil {
		return nil, fmt.Errorf("orders.GetOrder: %w", err)
	}

	payments, err := s.payments.ListOrderPayments(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("payments.ListOrderPayments: %w", err)
	}

	return payments, nil
}

// UpdatePayment applies the patch and, when the payment is the order's latest,
// copies the new status onto the order.
func (s *PaymentService) UpdatePayment(ctx context.Context, paymentID, actorID uuid.UUID, in domain.UpdatePaymentInput) (_ domain.Payment, err error) {
	ctx, span := s.tracer.Start(ctx, "PaymentService.UpdatePayment")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.String("payment.id", paymentID.String()))

	var before, after domain.Payment

	err = s.transactor.WithinTx(ctx, func(repos port.Repositories) error {
		current, err := repos.Payments.GetPaymentForUpdate(ctx, paymentID)
		if err != nil {
			return fmt.Errorf("payments.GetPaymentForUpdate: %w", err)
		}
		before = current

		if _, err := repos.Orders.GetOrderForUpdate(ctx, current.OrderID); err != nil {
			return fmt.Errorf("orders.GetOrderForUpdate: %w", err)
		}

		next, err := in.Apply(current)
		if err != nil {
			return fmt.Errorf("in.Apply: %w", err)
		}

		after, err = repos.Payments.UpdatePayment(ctx, next)
		if err != nil {
			return fmt.Errorf("payments.UpdatePayment: %w", err)
		}

		latest, err := repos.Payments.ListOrderPayments(ctx, current.OrderID)
		if err != nil {
			return fmt.Errorf("payments.ListOrderPayments: %w", err)
		}

		if len(latest) > 0 && latest[0].ID == after.ID {
			if err := repos.Orders.UpdatePaymentStatus(ctx, after.OrderID, after.Status); err != nil {
				return fmt.Errorf("orders.UpdatePaymentStatus: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("transactor.WithinTx: %w", err)
	}

	s.logger.Info("payment updated",
		zap.String("method", "UpdatePayment"),
		zap.String("payment_id", paymentID.String()),
		zap.String("status", string(after.Status)),
	)

	s.emitter.Audit(ctx, events.AuditRecord{
		Entity:   paymentEntity,
		EntityID: paymentID,
		Action:   events.AuditActionUpdate,
		ActorID:  actorID,
		Before:   events.Snapshot(before),
		After:    events.Snapshot(after),
	})

	return after, nil
}

// DeletePayment is only allowed once the order is cancelled; the order goes back to unpaid.
func (s *PaymentService) DeletePayment(ctx context.Context, paymentID, actorID uuid.UUID) (err error) {
	ctx, span := s.tracer.Start(ctx, "PaymentService.DeletePayment")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.String("payment.id", paymentID.String()))

	var before domain.Payment

	err = s.transactor.WithinTx(ctx, func(repos port.Repositories) error {
		current, err := repos.Payments.GetPaymentForUpdate(ctx, paymentID)
		if err != nil {
			return fmt.Errorf("payments.GetPaymentForUpdate: %w", err)
		}
		before = current

		order, err := repos.Orders.GetOrderForUpdate(ctx, current.OrderID)
		if err != nil {
			return fmt.Errorf("orders.GetOrderForUpdate: %w", err)
		}

		if order.Status != domain.OrderStatusCancelled {
			return fmt.Errorf("order[%s] status[%s]: %w", order.OrderNumber, order.Status, domain.ErrOrderActive)
		}

		if err := repos.Payments.DeletePayment(ctx, paymentID); err != nil {
			return fmt.Errorf("payments.DeletePayment: %w", err)
		}

		if err := repos.Orders.UpdatePaymentStatus(ctx, order.ID, domain.PaymentStatusUnpaid); err != nil {
			return fmt.Errorf("orders.UpdatePaymentStatus: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("transactor.WithinTx: %w", err)
	}

	s.logger.Info("payment deleted",
		zap.String("method", "DeletePayment"),
		zap.String("payment_id", paymentID.String()),
		zap.String("order_id", before.OrderID.String()),
	)

	s.emitter.Audit(ctx, events.AuditRecord{
		Entity:   paymentEntity,
		EntityID: paymentID,
		Action:   events.AuditActionDelete,
		ActorID:  actorID,
		Before:   events.Snapshot(before),
	})

	return nil
}
