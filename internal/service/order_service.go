package service

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/backoffice/internal/domain"
	"github.com/nikolayk812/backoffice/internal/events"
	"github.com/nikolayk812/backoffice/internal/port"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

const orderEntity = "order"

type OrderService struct {
	transactor port.Transactor
	orders     port.OrderRepository
	alerts     *LowStockAlerts
	emitter    events.Emitter
	logger     *zap.Logger
	tracer     trace.Tracer
	now        func() time.Time
}

func NewOrderService(
	transactor port.Transactor,
	orders port.OrderRepository,
	alerts *LowStockAlerts,
	emitter events.Emitter,
	logger *zap.Logger,
	tracer trace.Tracer,
) *OrderService {
	return &OrderService{
		transactor: transactor,
		orders:     orders,
		alerts:     alerts,
		emitter:    emitter,
		logger:     logger,
		tracer:     tracer,
		now:        time.Now,
	}
}

// CreateOrder checks every line, locks the inventories, inserts the order and
// decrements the stock in one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, actorID uuid.UUID, in domain.CreateOrderInput) (_ domain.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder")
	defer func() { endSpan(span, err) }()

	if err := in.Validate(); err != nil {
		return domain.Order{}, fmt.Errorf("in.Validate: %w", err)
	}

	lines := in.MergedLines()

	var (
		created     domain.Order
		inventories []domain.Inventory
	)

	err = s.transactor.WithinTx(ctx, func(repos port.Repositories) error {
		inventories = inventories[:0]

		products, cur, err := loadSellableProducts(ctx, repos.Products, lines)
		if err != nil {
			return err
		}

		// inventory rows are locked in product id order so concurrent orders cannot deadlock
		locked := slices.Clone(lines)
		slices.SortFunc(locked, func(a, b domain.OrderLine) int {
			return bytes.Compare(a.ProductID[:], b.ProductID[:])
		})

		for _, line := range locked {
			if _, err := lockStock(ctx, repos.Inventory, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		items := make([]domain.OrderItem, 0, len(lines))
		for _, line := range lines {
			item, err := domain.NewOrderItem(products[line.ProductID], line.Quantity)
			if err != nil {
				return fmt.Errorf("domain.NewOrderItem: %w", err)
			}
			items = append(items, item)
		}

		totals, err := domain.ComputeTotals(cur, items)
		if err != nil {
			return fmt.Errorf("domain.ComputeTotals: %w", err)
		}

		order := domain.Order{
			OrderNumber:     domain.NewOrderNumber(s.now()),
			CustomerName:    in.CustomerName,
			ShippingAddress: in.ShippingAddress,
			Notes:           in.Notes,
			UserID:          actorID,
			Items:           items,
		}
		order.ApplyTotals(totals)

		created, err = repos.Orders.InsertOrder(ctx, order)
		if err != nil {
			return fmt.Errorf("orders.InsertOrder: %w", err)
		}

		reason := domain.OrderPlacedReason(created.OrderNumber)
		for _, line := range locked {
			inv, err := repos.Inventory.Decrement(ctx, domain.StockAdjustment{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Reason:    reason,
				ActorID:   actorID,
			})
			if err != nil {
				return fmt.Errorf("inventory.Decrement: %w", err)
			}
			inventories = append(inventories, inv)
		}

		return nil
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("transactor.WithinTx: %w", err)
	}

	span.SetAttributes(attribute.String("order.id", created.ID.String()))

	s.logger.Info("order created",
		zap.String("method", "CreateOrder"),
		zap.String("order_id", created.ID.String()),
		zap.String("order_number", created.OrderNumber),
		zap.Stringer("total", created.Total),
	)

	s.emitter.Audit(ctx, events.AuditRecord{
		Entity:   orderEntity,
		EntityID: created.ID,
		Action:   events.AuditActionCreate,
		ActorID:  actorID,
		After:    events.Snapshot(created),
	})
	s.alerts.Check(ctx, inventories...)

	return created, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (_ domain.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.String("order.id", orderID.String()))

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	return order, nil
}

func (s *OrderService) SearchOrders(ctx context.Context, filter domain.OrderFilter) (_ []domain.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.SearchOrders")
	defer func() { endSpan(span, err) }()

	orders, err := s.orders.SearchOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("orders.SearchOrders: %w", err)
	}

	span.SetAttributes(attribute.Int("orders.count", len(orders)))

	return orders, nil
}

// UpdateOrder applies the patch under the order row lock. Cancelling restocks
// every item in the same transaction.
func (s *OrderService) UpdateOrder(ctx context.Context, orderID, actorID uuid.UUID, in domain.UpdateOrderInput) (_ domain.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateOrder")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.String("order.id", orderID.String()))

	if in.IsEmpty() {
		return domain.Order{}, domain.ValidationError{Field: "body", Reason: "nothing to update"}
	}
	if in.Status != nil {
		if _, err := domain.ToOrderStatus(string(*in.Status)); err != nil {
			return domain.Order{}, domain.ValidationError{Field: "status", Reason: err.Error()}
		}
	}
	if in.PaymentStatus != nil {
		if _, err := domain.ToPaymentStatus(string(*in.PaymentStatus)); err != nil {
			return domain.Order{}, fmt.Errorf("domain.ToPaymentStatus: %w", err)
		}
	}

	var before, after domain.Order

	err = s.transactor.WithinTx(ctx, func(repos port.Repositories) error {
		current, err := repos.Orders.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return fmt.Errorf("orders.GetOrderForUpdate: %w", err)
		}
		before = current

		next := current
		if in.Status != nil && *in.Status != current.Status {
			if err := current.Status.ValidateTransition(*in.Status); err != nil {
				return fmt.Errorf("status.ValidateTransition: %w", err)
			}
			if *in.Status == domain.OrderStatusCancelled {
				if err := restockItems(ctx, repos.Inventory, current, actorID); err != nil {
					return err
				}
			}
			next.Status = *in.Status
		}
		if in.PaymentStatus != nil {
			next.PaymentStatus = *in.PaymentStatus
		}
		if in.Notes != nil {
			next.Notes = *in.Notes
		}

		if err := repos.Orders.UpdateOrder(ctx, next); err != nil {
			return fmt.Errorf("orders.UpdateOrder: %w", err)
		}

		after, err = repos.Orders.GetOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("orders.GetOrder: %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("transactor.WithinTx: %w", err)
	}

	s.logger.Info("order updated",
		zap.String("method", "UpdateOrder"),
		zap.String("order_id", orderID.String()),
		zap.String("status", string(after.Status)),
		zap.String("payment_status", string(after.PaymentStatus)),
	)

	s.emitter.Audit(ctx, events.AuditRecord{
		Entity:   orderEntity,
		EntityID: orderID,
		Action:   events.AuditActionUpdate,
		ActorID:  actorID,
		Before:   events.Snapshot(before),
		After:    events.Snapshot(after),
	})

	return after, nil
}

// DeleteOrder is a soft delete: the order is cancelled and its stock returned.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID, actorID uuid.UUID) (err error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.DeleteOrder")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.String("order.id", orderID.String()))

	var before, after domain.Order

	err = s.transactor.WithinTx(ctx, func(repos port.Repositories) error {
		current, err := repos.Orders.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return fmt.Errorf("orders.GetOrderForUpdate: %w", err)
		}
		before = current

		// a cancelled order fails here, so stock is never returned twice
		if err := current.Status.ValidateTransition(domain.OrderStatusCancelled); err != nil {
			return fmt.Errorf("status.ValidateTransition: %w", err)
		}

		if err := restockItems(ctx, repos.Inventory, current, actorID); err != nil {
			return err
		}

		next := current
		next.Status = domain.OrderStatusCancelled
		if err := repos.Orders.UpdateOrder(ctx, next); err != nil {
			return fmt.Errorf("orders.UpdateOrder: %w", err)
		}

		after, err = repos.Orders.GetOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("orders.GetOrder: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("transactor.WithinTx: %w", err)
	}

	s.logger.Info("order cancelled",
		zap.String("method", "DeleteOrder"),
		zap.String("order_id", orderID.String()),
		zap.Int("items", len(after.Items)),
	)

	s.emitter.Audit(ctx, events.AuditRecord{
		Entity:   orderEntity,
		EntityID: orderID,
		Action:   events.AuditActionDelete,
		ActorID:  actorID,
		Before:   events.Snapshot(before),
		After:    events.Snapshot(after),
	})

	return nil
}

// AddOrderItem appends a line to a pending order, takes the stock and
// recomputes the totals in one transaction.
func (s *OrderService) AddOrderItem(ctx context.Context, actorID uuid.UUID, in domain.AddOrderItemInput) (_ domain.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.AddOrderItem")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(
		attribute.String("order.id", in.OrderID.String()),
		attribute.String("product.id", in.ProductID.String()),
	)

	if in.OrderID == uuid.Nil {
		return domain.Order{}, domain.ValidationError{Field: "orderId", Reason: "is empty"}
	}
	if in.ProductID == uuid.Nil {
		return domain.Order{}, domain.ValidationError{Field: "productId", Reason: "is empty"}
	}
	if err := domain.ValidateQuantity(in.Quantity); err != nil {
		return domain.Order{}, err
	}

	var (
		before, after domain.Order
		inv           domain.Inventory
	)

	err = s.transactor.WithinTx(ctx, func(repos port.Repositories) error {
		current, err := repos.Orders.GetOrderForUpdate(ctx, in.OrderID)
		if err != nil {
			return fmt.Errorf("orders.GetOrderForUpdate: %w", err)
		}
		before = current

		if current.Status != domain.OrderStatusPending {
			return fmt.Errorf("order[%s] status[%s]: %w", current.OrderNumber, current.Status, domain.ErrOrderNotEditable)
		}

		products, cur, err := loadSellableProducts(ctx, repos.Products, []domain.OrderLine{{ProductID: in.ProductID, Quantity: in.Quantity}})
		if err != nil {
			return err
		}
		if cur != current.Currency() {
			return fmt.Errorf("product %s, order %s: %w", cur, current.Currency(), domain.ErrCurrencyMismatch)
		}

		if _, err := lockStock(ctx, repos.Inventory, in.ProductID, in.Quantity); err != nil {
			return err
		}

		item, err := domain.NewOrderItem(products[in.ProductID], in.Quantity)
		if err != nil {
			return fmt.Errorf("domain.NewOrderItem: %w", err)
		}
		item.OrderID = current.ID

		item, err = repos.Orders.InsertOrderItem(ctx, item)
		if err != nil {
			return fmt.Errorf("orders.InsertOrderItem: %w", err)
		}

		inv, err = repos.Inventory.Decrement(ctx, domain.StockAdjustment{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			Reason:    domain.OrderItemAddedReason(current.OrderNumber),
			ActorID:   actorID,
		})
		if err != nil {
			return fmt.Errorf("inventory.Decrement: %w", err)
		}

		next := current
		next.Items = append(slices.Clone(current.Items), item)

		totals, err := domain.ComputeTotals(current.Currency(), next.Items)
		if err != nil {
			return fmt.Errorf("domain.ComputeTotals: %w", err)
		}
		next.ApplyTotals(totals)

		if err := repos.Orders.UpdateOrderTotals(ctx, next); err != nil {
			return fmt.Errorf("orders.UpdateOrderTotals: %w", err)
		}

		after, err = repos.Orders.GetOrder(ctx, in.OrderID)
		if err != nil {
			return fmt.Errorf("orders.GetOrder: %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("transactor.WithinTx: %w", err)
	}

	s.logger.Info("order item added",
		zap.String("method", "AddOrderItem"),
		zap.String("order_id", in.OrderID.String()),
		zap.String("product_id", in.ProductID.String()),
		zap.Int("quantity", in.Quantity),
	)

	s.emitter.Audit(ctx, events.AuditRecord{
		Entity:   orderEntity,
		EntityID: in.OrderID,
		Action:   events.AuditActionUpdate,
		ActorID:  actorID,
		Before:   events.Snapshot(before),
		After:    events.Snapshot(after),
	})
	s.alerts.Check(ctx, inv)

	return after, nil
}

// loadSellableProducts returns the products keyed by id and their single currency.
func loadSellableProducts(ctx context.Context, repo port.ProductRepository, lines []domain.OrderLine) (map[uuid.UUID]domain.Product, currency.Unit, error) {
	products := make(map[uuid.UUID]domain.Product, len(lines))

	var cur currency.Unit

	for i, line := range lines {
		product, err := repo.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, cur, fmt.Errorf("products.GetProduct: %w", err)
		}

		if !product.Sellable() {
			return nil, cur, fmt.Errorf("product[%s] status[%s]: %w", product.ID, product.Status, domain.ErrProductNotActive)
		}

		if i == 0 {
			cur = product.Price.Currency
		} else if product.Price.Currency != cur {
			return nil, cur, fmt.Errorf("product[%s] %s != %s: %w", product.ID, product.Price.Currency, cur, domain.ErrCurrencyMismatch)
		}

		products[product.ID] = product
	}

	return products, cur, nil
}

func lockStock(ctx context.Context, repo port.InventoryRepository, productID uuid.UUID, quantity int) (domain.Inventory, error) {
	inv, err := repo.GetInventoryForUpdate(ctx, productID)
	if err != nil {
		return domain.Inventory{}, fmt.Errorf("inventory.GetInventoryForUpdate: %w", err)
	}

	if inv.Stock < quantity {
		return domain.Inventory{}, fmt.Errorf("product[%s] stock[%d] < quantity[%d]: %w", productID, inv.Stock, quantity, domain.ErrInsufficientStock)
	}

	return inv, nil
}

func restockItems(ctx context.Context, repo port.InventoryRepository, order domain.Order, actorID uuid.UUID) error {
	items := slices.Clone(order.Items)
	slices.SortFunc(items, func(a, b domain.OrderItem) int {
		return bytes.Compare(a.ProductID[:], b.ProductID[:])
	})

	reason := domain.OrderCancelledReason(order.OrderNumber)
	for _, item := range items {
		if _, err := repo.Restock(ctx, domain.StockAdjustment{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Reason:    reason,
			ActorID:   actorID,
		}); err != nil {
			return fmt.Errorf("inventory.Restock[%s]: %w", item.ProductID, err)
		}
	}

	return nil
}
