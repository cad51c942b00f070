package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/backoffice/internal/domain"
	"github.com/nikolayk812/backoffice/internal/events"
	"github.com/nikolayk812/backoffice/internal/service"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/currency"
)

func (suite *serviceSuite) TestCreateOrder_ComputesTotalsAndTakesStock() {
	defer suite.deleteAll()

	product := suite.createProduct(newProduct("99.99", 100, 5))
	actorID := uuid.New()

	order, err := suite.createOrder(actorID, line(product.ID, 10))
	suite.Require().NoError(err)

	assertMoney(suite.T(), "999.90", order.Subtotal)
	assertMoney(suite.T(), "99.99", order.Tax)
	assertMoney(suite.T(), "1099.89", order.Total)
	suite.Equal(domain.OrderStatusPending, order.Status)
	suite.Equal(domain.PaymentStatusUnpaid, order.PaymentStatus)
	suite.Equal(actorID, order.UserID)
	suite.True(domain.IsOrderNumber(order.OrderNumber), order.OrderNumber)

	suite.Require().Len(order.Items, 1)
	assertMoney(suite.T(), "99.99", order.Items[0].UnitPrice)
	assertMoney(suite.T(), "999.90", order.Items[0].TotalPrice)

	suite.Equal(90, suite.stock(product.ID))

	histories := suite.histories(product.ID)
	suite.Require().Len(histories, 1)
	suite.Equal(-10, histories[0].Change)
	suite.Equal(domain.OrderPlacedReason(order.OrderNumber), histories[0].Reason)
	suite.Equal(actorID, histories[0].UserID)

	suite.Equal([]events.AuditAction{events.AuditActionCreate}, suite.emitter.auditActions("order"))
	suite.Empty(suite.emitter.notificationsOf(events.NotificationLowStock))
}

func (suite *serviceSuite) TestCreateOrder_InsufficientStockChangesNothing() {
	defer suite.deleteAll()

	product := suite.createProduct(newProduct("99.99", 100, 5))

	_, err := suite.createOrder(uuid.New(), line(product.ID, 200))
	suite.Require().ErrorIs(err, domain.ErrInsufficientStock)

	suite.Equal(100, suite.stock(product.ID))
	suite.Empty(suite.histories(product.ID))

	orders, err := suite.orderService.SearchOrders(suite.T().Context(), domain.OrderFilter{
		Statuses: []domain.OrderStatus{domain.OrderStatusPending},
	})
	suite.Require().NoError(err)
	suite.Empty(orders)
	suite.Empty(suite.emitter.auditActions("order"))
}

func (suite *serviceSuite) TestCreateOrder_Errors() {
	defer suite.deleteAll()

	active := suite.createProduct(newProduct("10.00", 10, 1))

	draftInput := newProduct("10.00", 10, 1)
	draftInput.Status = domain.ProductStatusDraft
	draft := suite.createProduct(draftInput)

	euroInput := newProduct("10.00", 10, 1)
	euroInput.Price = domain.Money{Amount: euroInput.Price.Amount, Currency: currency.EUR}
	euro := suite.createProduct(euroInput)

	pricey := suite.createProduct(newProduct("95000000.00", 10, 1))

	tests := []struct {
		name      string
		lines     []domain.OrderLine
		wantError error
	}{
		{
			name:      "no items",
			wantError: domain.ValidationError{Field: "items", Reason: "no items in order"},
		},
		{
			name:      "zero quantity",
			lines:     []domain.OrderLine{line(active.ID, 0)},
			wantError: domain.ErrInvalidQuantity,
		},
		{
			name:      "unknown product",
			lines:     []domain.OrderLine{line(uuid.New(), 1)},
			wantError: domain.ErrProductNotFound,
		},
		{
			name:      "draft product",
			lines:     []domain.OrderLine{line(draft.ID, 1)},
			wantError: domain.ErrProductNotActive,
		},
		{
			name:      "mixed currencies",
			lines:     []domain.OrderLine{line(active.ID, 1), line(euro.ID, 1)},
			wantError: domain.ErrCurrencyMismatch,
		},
		{
			name:      "merged lines exceed stock",
			lines:     []domain.OrderLine{line(active.ID, 6), line(active.ID, 5)},
			wantError: domain.ErrInsufficientStock,
		},
		{
			name:      "quantity above int32",
			lines:     []domain.OrderLine{line(active.ID, domain.MaxQuantity+1)},
			wantError: domain.ErrInvalidQuantity,
		},
		{
			name:      "line total beyond amount precision",
			lines:     []domain.OrderLine{line(pricey.ID, 2)},
			wantError: domain.ErrInvalidAmount,
		},
		{
			name:      "order total beyond amount precision",
			lines:     []domain.OrderLine{line(pricey.ID, 1)},
			wantError: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.createOrder(uuid.New(), tt.lines...)
			suite.Require().ErrorIs(err, tt.wantError)
		})
	}

	suite.Equal(10, suite.stock(active.ID))
	suite.Equal(10, suite.stock(pricey.ID))
}

func (suite *serviceSuite) TestCreateOrder_MergesDuplicateLines() {
	defer suite.deleteAll()

	product := suite.createProduct(newProduct("2.50", 20, 1))

	order := suite.mustCreateOrder(line(product.ID, 2), line(product.ID, 3))

	suite.Require().Len(order.Items, 1)
	suite.Equal(5, order.Items[0].Quantity)
	assertMoney(suite.T(), "12.50", order.Subtotal)
	suite.Equal(15, suite.stock(product.ID))
}

func (suite *serviceSuite) TestCreateOrder_ConcurrentNeverOversells() {
	defer suite.deleteAll()

	first := suite.createProduct(newProduct("1.00", 10, 0))
	second := suite.createProduct(newProduct("1.00", 10, 0))

	const workers = 25

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failures  []error
	)

	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// opposite line order on every other worker
			lines := []domain.OrderLine{line(first.ID, 1), line(second.ID, 1)}
			if i%2 == 1 {
				lines = []domain.OrderLine{line(second.ID, 1), line(first.ID, 1)}
			}

			_, err := suite.createOrder(uuid.New(), lines...)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			succeeded++
		}()
	}
	wg.Wait()

	suite.Equal(10, succeeded)
	suite.Len(failures, workers-10)
	for _, err := range failures {
		suite.ErrorIs(err, domain.ErrInsufficientStock)
	}

	suite.Equal(0, suite.stock(first.ID))
	suite.Equal(0, suite.stock(second.ID))
	suite.assertHistorySum(first.ID, 10)
	suite.assertHistorySum(second.ID, 10)
}

func (suite *serviceSuite) TestCreateOrder_LowStockAlert() {
	defer suite.deleteAll()

	product := suite.createProduct(newProduct("5.00", 10, 5))

	suite.mustCreateOrder(line(product.ID, 4))
	suite.Empty(suite.emitter.notificationsOf(events.NotificationLowStock))

	suite.mustCreateOrder(line(product.ID, 2))

	notifications := suite.emitter.notificationsOf(events.NotificationLowStock)
	suite.Require().Len(notifications, 1)
	suite.Equal(product.ID, notifications[0].EntityID)
	suite.Equal([]string{"inventory.low_stock"}, suite.queue.names())
}

func (suite *serviceSuite) TestCreateOrder_LowStockJobDoesNotBlock() {
	defer suite.deleteAll()

	logger := zaptest.NewLogger(suite.T())
	dispatcher := events.NewDispatcher(events.NewLogSink(logger), logger, 1, 8)
	queue := newBlockingQueue()

	alerts := service.NewLowStockAlerts(suite.settings, suite.emitter, dispatcher, queue, logger)
	orders := service.NewOrderService(suite.transactor, suite.orders, alerts, suite.emitter, logger,
		noop.NewTracerProvider().Tracer(service.TracerName))

	product := suite.createProduct(newProduct("5.00", 10, 5))

	ctx, cancel := context.WithCancel(suite.T().Context())
	in := domain.CreateOrderInput{
		CustomerName:    "Jane Doe",
		ShippingAddress: "1 Main St",
		Items:           []domain.OrderLine{line(product.ID, 6)},
	}

	done := make(chan error, 1)
	go func() {
		var err error
		for range 5 {
			_, err = orders.CreateOrder(ctx, uuid.New(), in)
			if !errors.Is(err, domain.ErrOrderNumberCollision) {
				break
			}
		}
		done <- err
	}()

	select {
	case err := <-done:
		suite.Require().NoError(err)
	case <-time.After(10 * time.Second):
		close(queue.release)
		suite.FailNow("CreateOrder waited for the job queue")
	}

	// the client is gone before the job is recorded
	cancel()

	select {
	case <-queue.started:
	case <-time.After(5 * time.Second):
		close(queue.release)
		suite.FailNow("low stock job never started")
	}
	suite.Empty(queue.names())

	close(queue.release)
	suite.Require().NoError(dispatcher.Close())

	suite.Equal([]string{"inventory.low_stock"}, queue.names())
	suite.Equal([]error{nil}, queue.contextErrors())
	suite.Equal(4, suite.stock(product.ID))
}

func (suite *serviceSuite) TestCreateOrder_LowStockAlertDisabled() {
	defer suite.deleteAll()

	suite.Require().NoError(suite.settings.Set(suite.T().Context(), "inventory.low_stock_alerts", "false"))

	product := suite.createProduct(newProduct("5.00", 10, 5))
	suite.mustCreateOrder(line(product.ID, 8))

	suite.Empty(suite.emitter.notificationsOf(events.NotificationLowStock))
	suite.Empty(suite.queue.names())
}

func (suite *serviceSuite) TestCancelOrder_RestocksEveryItem() {
	defer suite.deleteAll()

	first := suite.createProduct(newProduct("10.00", 50, 1))
	second := suite.createProduct(newProduct("20.00", 50, 1))
	actorID := uuid.New()

	order := suite.mustCreateOrder(line(first.ID, 3), line(second.ID, 5))
	suite.Equal(47, suite.stock(first.ID))
	suite.Equal(45, suite.stock(second.ID))

	cancelled, err := suite.orderService.UpdateOrder(suite.T().Context(), order.ID, actorID, domain.UpdateOrderInput{
		Status: lo.ToPtr(domain.OrderStatusCancelled),
	})
	suite.Require().NoError(err)
	suite.Equal(domain.OrderStatusCancelled, cancelled.Status)

	suite.Equal(50, suite.stock(first.ID))
	suite.Equal(50, suite.stock(second.ID))

	for _, p := range []struct {
		id       uuid.UUID
		quantity int
	}{{first.ID, 3}, {second.ID, 5}} {
		histories := suite.histories(p.id)
		suite.Require().Len(histories, 2)

		latest := histories[0]
		suite.Equal(p.quantity, latest.Change)
		suite.Equal(domain.OrderCancelledReason(order.OrderNumber), latest.Reason)
		suite.Equal(actorID, latest.UserID)

		suite.assertHistorySum(p.id, 50)
	}

	suite.Equal([]events.AuditAction{events.AuditActionCreate, events.AuditActionUpdate}, suite.emitter.auditActions("order"))
}

func (suite *serviceSuite) TestDeleteOrder() {
	defer suite.deleteAll()

	product := suite.createProduct(newProduct("10.00", 10, 1))
	order := suite.mustCreateOrder(line(product.ID, 4))

	err := suite.orderService.DeleteOrder(suite.T().Context(), order.ID, uuid.New())
	suite.Require().NoError(err)
	suite.Equal(10, suite.stock(product.ID))

	// second delete must not restock again
	err = suite.orderService.DeleteOrder(suite.T().Context(), order.ID, uuid.New())
	suite.Require().ErrorIs(err, domain.ErrInvalidStatusTransition)
	suite.Equal(10, suite.stock(product.ID))

	err = suite.orderService.DeleteOrder(suite.T().Context(), uuid.New(), uuid.New())
	suite.Require().ErrorIs(err, domain.ErrOrderNotFound)
	suite.Require().ErrorIs(err, domain.ErrNotFound)

	got, err := suite.orderService.GetOrder(suite.T().Context(), order.ID)
	suite.Require().NoError(err)
	suite.Equal(domain.OrderStatusCancelled, got.Status)

	suite.Equal([]events.AuditAction{events.AuditActionCreate, events.AuditActionDelete}, suite.emitter.auditActions("order"))
}

func (suite *serviceSuite) TestUpdateOrder_StatusWalk() {
	defer suite.deleteAll()

	product := suite.createProduct(newProduct("10.00", 10, 1))
	order := suite.mustCreateOrder(line(product.ID, 1))
	ctx := suite.T().Context()

	_, err := suite.orderService.UpdateOrder(ctx, order.ID, uuid.New(), domain.UpdateOrderInput{
		Status: lo.ToPtr(domain.OrderStatusShipped),
	})
	suite.Require().ErrorIs(err, domain.ErrInvalidStatusTransition)

	for _, next := range []domain.OrderStatus{
		domain.OrderStatusProcessing,
		domain.OrderStatusProcessing, // same status is a no-op
		domain.OrderStatusShipped,
		domain.OrderStatusCompleted,
	} {
		updated, err := suite.orderService.UpdateOrder(ctx, order.ID, uuid.New(), domain.UpdateOrderInput{Status: lo.ToPtr(next)})
		suite.Require().NoError(err)
		suite.Equal(next, updated.Status)
	}

	_, err = suite.orderService.UpdateOrder(ctx, order.ID, uuid.New(), domain.UpdateOrderInput{
		Status: lo.ToPtr(domain.OrderStatusCancelled),
	})
	suite.Require().ErrorIs(err, domain.ErrInvalidStatusTransition)

	// completed orders keep their stock
	suite.Equal(9, suite.stock(product.ID))
}

func (suite *serviceSuite) TestUpdateOrder_Fields() {
	defer suite.deleteAll()

	product := suite.createProduct(newProduct("10.00", 10, 1))
	order := suite.mustCreateOrder(line(product.ID, 1))
	ctx := suite.T().Context()

	updated, err := suite.orderService.UpdateOrder(ctx, order.ID, uuid.New(), domain.UpdateOrderInput{
		PaymentStatus: lo.ToPtr(domain.PaymentStatusPending),
		Notes:         lo.ToPtr("leave at the door"),
	})
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentStatusPending, updated.PaymentStatus)
	suite.Equal("leave at the door", updated.Notes)
	suite.Equal(domain.OrderStatusPending, updated.Status)

	_, err = suite.orderService.UpdateOrder(ctx, order.ID, uuid.New(), domain.UpdateOrderInput{
		PaymentStatus: lo.ToPtr(domain.PaymentStatus("bogus")),
	})
	suite.Require().ErrorIs(err, domain.ErrInvalidPaymentStatus)

	_, err = suite.orderService.UpdateOrder(ctx, order.ID, uuid.New(), domain.UpdateOrderInput{
		Status: lo.ToPtr(domain.OrderStatus("bogus")),
	})
	var validationErr domain.ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Equal("status", validationErr.Field)

	_, err = suite.orderService.UpdateOrder(ctx, order.ID, uuid.New(), domain.UpdateOrderInput{})
	suite.Require().ErrorAs(err, &validationErr)

	_, err = suite.orderService.UpdateOrder(ctx, uuid.New(), uuid.New(), domain.UpdateOrderInput{Notes: lo.ToPtr("x")})
	suite.Require().ErrorIs(err, domain.ErrOrderNotFound)
}

func (suite *serviceSuite) TestAddOrderItem() {
	defer suite.deleteAll()

	first := suite.createProduct(newProduct("10.00", 10, 1))
	second := suite.createProduct(newProduct("5.00", 10, 8))
	actorID := uuid.New()
	ctx := suite.T().Context()

	order := suite.mustCreateOrder(line(first.ID, 2))

	updated, err := suite.orderService.AddOrderItem(ctx, actorID, domain.AddOrderItemInput{
		OrderID:   order.ID,
		ProductID: second.ID,
		Quantity:  3,
	})
	suite.Require().NoError(err)

	suite.Require().Len(updated.Items, 2)
	assertMoney(suite.T(), "35.00", updated.Subtotal)
	assertMoney(suite.T(), "3.50", updated.Tax)
	assertMoney(suite.T(), "38.50", updated.Total)
	suite.Equal(7, suite.stock(second.ID))

	histories := suite.histories(second.ID)
	suite.Require().Len(histories, 1)
	suite.Equal(domain.OrderItemAddedReason(order.OrderNumber), histories[0].Reason)
	suite.Equal(-3, histories[0].Change)

	// stock 7 <= low level 8
	suite.Len(suite.emitter.notificationsOf(events.NotificationLowStock), 1)

	_, err = suite.orderService.AddOrderItem(ctx, actorID, domain.AddOrderItemInput{
		OrderID:   order.ID,
		ProductID: second.ID,
		Quantity:  100,
	})
	suite.Require().ErrorIs(err, domain.ErrInsufficientStock)

	_, err = suite.orderService.UpdateOrder(ctx, order.ID, actorID, domain.UpdateOrderInput{
		Status: lo.ToPtr(domain.OrderStatusProcessing),
	})
	suite.Require().NoError(err)

	_, err = suite.orderService.AddOrderItem(ctx, actorID, domain.AddOrderItemInput{
		OrderID:   order.ID,
		ProductID: second.ID,
		Quantity:  1,
	})
	suite.Require().ErrorIs(err, domain.ErrOrderNotEditable)
	suite.Equal(7, suite.stock(second.ID))
}

func (suite *serviceSuite) TestGetOrder_Idempotent() {
	defer suite.deleteAll()

	product := suite.createProduct(newProduct("10.00", 10, 1))
	order := suite.mustCreateOrder(line(product.ID, 1))

	first, err := suite.orderService.GetOrder(suite.T().Context(), order.ID)
	suite.Require().NoError(err)

	second, err := suite.orderService.GetOrder(suite.T().Context(), order.ID)
	suite.Require().NoError(err)

	assertDiff(suite.T(), first, second)
	assertDiff(suite.T(), order, first)
	suite.Equal(10-1, suite.stock(product.ID))
}

func (suite *serviceSuite) TestSearchOrders() {
	defer suite.deleteAll()

	product := suite.createProduct(newProduct("1.00", 100, 1))
	actorID := uuid.New()

	var created []domain.Order
	for range 3 {
		order, err := suite.createOrder(actorID, line(product.ID, 1))
		suite.Require().NoError(err)
		created = append(created, order)
	}
	suite.mustCreateOrder(line(product.ID, 1))

	found, err := suite.orderService.SearchOrders(suite.T().Context(), domain.OrderFilter{
		UserIDs: []uuid.UUID{actorID},
	})
	suite.Require().NoError(err)

	ids := func(orders []domain.Order) []string {
		result := lo.Map(orders, func(o domain.Order, _ int) string { return o.ID.String() })
		sort.Strings(result)
		return result
	}
	suite.Equal(ids(created), ids(found))
}
