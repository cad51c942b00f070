package service_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/backoffice/internal/domain"
	"github.com/nikolayk812/backoffice/internal/events"
	"github.com/nikolayk812/backoffice/internal/service"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap/zaptest"
)

func (suite *serviceSuite) paidInput(orderID uuid.UUID, amount string) domain.CreatePaymentInput {
	return domain.CreatePaymentInput{
		OrderID:       orderID,
		Status:        domain.PaymentStatusPaid,
		Method:        domain.PaymentMethodCreditCard,
		Amount:        decimal.RequireFromString(amount),
		PaidAt:        lo.ToPtr(time.Now().UTC().Truncate(time.Microsecond)),
		TransactionID: uuid.NewString(),
	}
}

func (suite *serviceSuite) orderPaymentStatus(orderID uuid.UUID) domain.PaymentStatus {
	order, err := suite.orderService.GetOrder(suite.T().Context(), orderID)
	suite.Require().NoError(err)

	return order.PaymentStatus
}

func (suite *serviceSuite) TestCreatePayment_PaidThenDuplicate() {
	defer suite.deleteAll()

	product := suite.createProduct(newProduct("49.99", 10, 1))
	order := suite.mustCreateOrder(line(product.ID, 2))
	assertMoney(suite.T(), "109.98", order.Total)

	payment, err := suite.paymentService.CreatePayment(suite.T().Context(), uuid.New(), suite.paidInput(order.ID, "109.98"))
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentStatusPaid, payment.Status)
	assertMoney(suite.T(), "109.98", payment.Amount)
	suite.Equal(domain.PaymentStatusPaid, suite.orderPaymentStatus(order.ID))

	_, err = suite.paymentService.CreatePayment(suite.T().Context(), uuid.New(), suite.paidInput(order.ID, "109.98"))
	suite.Require().ErrorIs(err, domain.ErrDuplicatePayment)
	suite.EqualError(err, "transactor.WithinTx: order["+order.OrderNumber+"] payment status[paid]: order already has a payment")

	// preconditions failing is not a payment failure
	suite.Equal(domain.PaymentStatusPaid, suite.orderPaymentStatus(order.ID))
	suite.Empty(suite.emitter.notificationsOf(events.NotificationFailedPayment))

	payments, err := suite.paymentService.ListOrderPayments(suite.T().Context(), order.ID)
	suite.Require().NoError(err)
	suite.Require().Len(payments, 1)
	assertDiff(suite.T(), payment, payments[0])

	suite.Equal([]events.AuditAction{events.AuditActionCreate}, suite.emitter.auditActions("payment"))
}

func (suite *serviceSuite) TestCreatePayment_Errors() {
	defer suite.deleteAll()

	product := suite.createProduct(newProduct("10.00", 10, 1))
	order := suite.mustCreateOrder(line(product.ID, 1))

	cancelled := suite.mustCreateOrder(line(product.ID, 1))
	suite.Require().NoError(suite.orderService.DeleteOrder(suite.T().Context(), cancelled.ID, uuid.New()))

	tests := []struct {
		name      string
		inputFunc func() domain.CreatePaymentInput
		wantError error
	}{
		{
			name: "order not found",
			inputFunc: func() domain.CreatePaymentInput {
				return suite.paidInput(uuid.New(), "1.00")
			},
			wantError: domain.ErrOrderNotFound,
		},
		{
			name: "order cancelled",
			inputFunc: func() domain.CreatePaymentInput {
				return suite.paidInput(cancelled.ID, "1.00")
			},
			wantError: domain.ErrOrderCancelled,
		},
		{
			name: "zero amount",
			inputFunc: func() domain.CreatePaymentInput {
				return suite.paidInput(order.ID, "0")
			},
			wantError: domain.ErrInvalidAmount,
		},
		{
			name: "paid without paidAt",
			inputFunc: func() domain.CreatePaymentInput {
				in := suite.paidInput(order.ID, "11.00")
				in.PaidAt = nil
				return in
			},
			wantError: domain.ErrMissingPaidAt,
		},
		{
			name: "unknown method",
			inputFunc: func() domain.CreatePaymentInput {
				in := suite.paidInput(order.ID, "11.00")
				in.Method = "barter"
				return in
			},
			wantError: domain.ErrInvalidPaymentMethod,
		},
		{
			name: "unknown status",
			inputFunc: func() domain.CreatePaymentInput {
				in := suite.paidInput(order.ID, "11.00")
				in.Status = "lost"
				return in
			},
			wantError: domain.ErrInvalidPaymentStatus,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.paymentService.CreatePayment(suite.T().Context(), uuid.New(), tt.inputFunc())
			suite.Require().ErrorIs(err, tt.wantError)
		})
	}

	suite.Equal(domain.PaymentStatusUnpaid, suite.orderPaymentStatus(order.ID))
	suite.Empty(suite.emitter.notificationsOf(events.NotificationFailedPayment))
}

// Rejections before anything is written are not payment failures: the order keeps its payment status.
func (suite *serviceSuite) TestCreatePayment_RejectionKeepsOrderPaymentStatus() {
	defer suite.deleteAll()

	ctx := suite.T().Context()
	product := suite.createProduct(newProduct("10.00", 10, 1))

	unpaid := suite.mustCreateOrder(line(product.ID, 1))

	pending := suite.mustCreateOrder(line(product.ID, 1))
	_, err := suite.paymentService.CreatePayment(ctx, uuid.New(), domain.CreatePaymentInput{
		OrderID: pending.ID,
		Status:  domain.PaymentStatusPending,
		Method:  domain.PaymentMethodBankTransfer,
		Amount:  decimal.RequireFromString("11.00"),
	})
	suite.Require().NoError(err)

	tests := []struct {
		name       string
		orderID    uuid.UUID
		amount     string
		wantError  error
		wantStatus domain.PaymentStatus
	}{
		{
			name:       "duplicate on pending order",
			orderID:    pending.ID,
			amount:     "11.00",
			wantError:  domain.ErrDuplicatePayment,
			wantStatus: domain.PaymentStatusPending,
		},
		{
			name:       "sub-cent amount",
			orderID:    unpaid.ID,
			amount:     "0.001",
			wantError:  domain.ErrInvalidAmount,
			wantStatus: domain.PaymentStatusUnpaid,
		},
		{
			name:       "amount beyond column precision",
			orderID:    unpaid.ID,
			amount:     "123456789.00",
			wantError:  domain.ErrInvalidAmount,
			wantStatus: domain.PaymentStatusUnpaid,
		},
		{
			name:       "negative amount",
			orderID:    unpaid.ID,
			amount:     "-1.00",
			wantError:  domain.ErrInvalidAmount,
			wantStatus: domain.PaymentStatusUnpaid,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.paymentService.CreatePayment(ctx, uuid.New(), suite.paidInput(tt.orderID, tt.amount))
			suite.Require().ErrorIs(err, tt.wantError)

			suite.Equal(tt.wantStatus, suite.orderPaymentStatus(tt.orderID))
			suite.Empty(suite.emitter.notificationsOf(events.NotificationFailedPayment))
		})
	}

	payments, err := suite.paymentService.ListOrderPayments(ctx, unpaid.ID)
	suite.Require().NoError(err)
	suite.Empty(payments)
}

func (suite *serviceSuite) TestCreatePayment_PersistFailureMarksOrderFailed() {
	defer suite.deleteAll()

	product := suite.createProduct(newProduct("10.00", 10, 1))
	order := suite.mustCreateOrder(line(product.ID, 1))

	logger := zaptest.NewLogger(suite.T())
	failing := service.NewPaymentService(
		failingTransactor{inner: suite.transactor, err: errInsertFailed},
		suite.orders,
		suite.payments,
		suite.emitter,
		logger,
		noop.NewTracerProvider().Tracer(service.TracerName),
	)

	_, err := failing.CreatePayment(suite.T().Context(), uuid.New(), suite.paidInput(order.ID, "11.00"))
	suite.Require().ErrorIs(err, errInsertFailed)

	suite.Equal(domain.PaymentStatusFailed, suite.orderPaymentStatus(order.ID))

	notifications := suite.emitter.notificationsOf(events.NotificationFailedPayment)
	suite.Require().Len(notifications, 1)
	suite.Equal(order.ID, notifications[0].EntityID)

	payments, err := suite.paymentService.ListOrderPayments(suite.T().Context(), order.ID)
	suite.Require().NoError(err)
	suite.Empty(payments)

	// failed orders accept a new payment
	_, err = suite.paymentService.CreatePayment(suite.T().Context(), uuid.New(), suite.paidInput(order.ID, "11.00"))
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentStatusPaid, suite.orderPaymentStatus(order.ID))
}

func (suite *serviceSuite) TestUpdatePayment() {
	defer suite.deleteAll()

	product := suite.createProduct(newProduct("10.00", 10, 1))
	order := suite.mustCreateOrder(line(product.ID, 1))
	ctx := suite.T().Context()

	pending, err := suite.paymentService.CreatePayment(ctx, uuid.New(), domain.CreatePaymentInput{
		OrderID: order.ID,
		Status:  domain.PaymentStatusPending,
		Method:  domain.PaymentMethodBankTransfer,
		Amount:  decimal.RequireFromString("10.00"),
	})
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentStatusPending, suite.orderPaymentStatus(order.ID))

	// amount may change while unpaid
	updated, err := suite.paymentService.UpdatePayment(ctx, pending.ID, uuid.New(), domain.UpdatePaymentInput{
		Amount: lo.ToPtr(decimal.RequireFromString("11.00")),
	})
	suite.Require().NoError(err)
	assertMoney(suite.T(), "11.00", updated.Amount)

	_, err = suite.paymentService.UpdatePayment(ctx, pending.ID, uuid.New(), domain.UpdatePaymentInput{
		Status: lo.ToPtr(domain.PaymentStatusPaid),
	})
	suite.Require().ErrorIs(err, domain.ErrMissingPaidAt)
	suite.Equal(domain.PaymentStatusPending, suite.orderPaymentStatus(order.ID))

	paid, err := suite.paymentService.UpdatePayment(ctx, pending.ID, uuid.New(), domain.UpdatePaymentInput{
		Status: lo.ToPtr(domain.PaymentStatusPaid),
		PaidAt: lo.ToPtr(time.Now()),
	})
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentStatusPaid, paid.Status)
	suite.Equal(domain.PaymentStatusPaid, suite.orderPaymentStatus(order.ID))

	_, err = suite.paymentService.UpdatePayment(ctx, pending.ID, uuid.New(), domain.UpdatePaymentInput{
		Amount: lo.ToPtr(decimal.RequireFromString("1.00")),
	})
	suite.Require().ErrorIs(err, domain.ErrImmutableAmount)

	refunded, err := suite.paymentService.UpdatePayment(ctx, pending.ID, uuid.New(), domain.UpdatePaymentInput{
		Status: lo.ToPtr(domain.PaymentStatusRefunded),
	})
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentStatusRefunded, refunded.Status)
	suite.Equal(domain.PaymentStatusRefunded, suite.orderPaymentStatus(order.ID))

	_, err = suite.paymentService.UpdatePayment(ctx, uuid.New(), uuid.New(), domain.UpdatePaymentInput{
		Notes: lo.ToPtr("x"),
	})
	suite.Require().ErrorIs(err, domain.ErrPaymentNotFound)

	suite.Equal(
		[]events.AuditAction{events.AuditActionCreate, events.AuditActionUpdate, events.AuditActionUpdate, events.AuditActionUpdate},
		suite.emitter.auditActions("payment"),
	)
}

func (suite *serviceSuite) TestDeletePayment() {
	defer suite.deleteAll()

	product := suite.createProduct(newProduct("10.00", 10, 1))
	order := suite.mustCreateOrder(line(product.ID, 1))
	ctx := suite.T().Context()

	payment, err := suite.paymentService.CreatePayment(ctx, uuid.New(), suite.paidInput(order.ID, "11.00"))
	suite.Require().NoError(err)

	err = suite.paymentService.DeletePayment(ctx, payment.ID, uuid.New())
	suite.Require().ErrorIs(err, domain.ErrOrderActive)

	_, err = suite.paymentService.GetPayment(ctx, payment.ID)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.orderService.DeleteOrder(ctx, order.ID, uuid.New()))

	err = suite.paymentService.DeletePayment(ctx, payment.ID, uuid.New())
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentStatusUnpaid, suite.orderPaymentStatus(order.ID))

	_, err = suite.paymentService.GetPayment(ctx, payment.ID)
	suite.Require().ErrorIs(err, domain.ErrPaymentNotFound)

	err = suite.paymentService.DeletePayment(ctx, payment.ID, uuid.New())
	suite.Require().ErrorIs(err, domain.ErrPaymentNotFound)

	suite.Equal([]events.AuditAction{events.AuditActionCreate, events.AuditActionDelete}, suite.emitter.auditActions("payment"))
}

func (suite *serviceSuite) TestListOrderPayments_UnknownOrder() {
	_, err := suite.paymentService.ListOrderPayments(suite.T().Context(), uuid.New())
	suite.Require().ErrorIs(err, domain.ErrOrderNotFound)
}
