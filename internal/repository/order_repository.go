package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/backoffice/internal/db"
	"github.com/nikolayk812/backoffice/internal/domain"
	"github.com/nikolayk812/backoffice/internal/port"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

const (
	orderNumberConstraint = "orders_order_number_key"
	defaultSearchLimit    = 100
)

type orderRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	return r.getOrder(ctx, orderID, false)
}

func (r *orderRepository) GetOrderForUpdate(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	return r.getOrder(ctx, orderID, true)
}

func (r *orderRepository) getOrder(ctx context.Context, orderID uuid.UUID, forUpdate bool) (domain.Order, error) {
	var o domain.Order

	// items are read in the same snapshot as the order row
	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Order, error) {
		get, name := q.GetOrder, "q.GetOrder"
		if forUpdate {
			get, name = q.GetOrderForUpdate, "q.GetOrderForUpdate"
		}

		dbOrder, err := get(ctx, orderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return o, fmt.Errorf("%s: %w", name, domain.ErrOrderNotFound)
			}
			return o, fmt.Errorf("%s: %w", name, err)
		}

		dbOrderItems, err := q.GetOrderItems(ctx, orderID)
		if err != nil {
			return o, fmt.Errorf("q.GetOrderItems: %w", err)
		}

		order, err := mapDBOrderToDomain(dbOrder, dbOrderItems)
		if err != nil {
			return o, fmt.Errorf("mapDBOrderToDomain: %w", err)
		}

		return order, nil
	})
}

// InsertOrder stores the order header and its items; totals must already be computed.
func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	var o domain.Order

	if len(order.Items) == 0 {
		return o, errors.New("no items in order")
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Order, error) {
		row, err := q.InsertOrder(ctx, db.InsertOrderParams{
			OrderNumber:     order.OrderNumber,
			CustomerName:    order.CustomerName,
			ShippingAddress: order.ShippingAddress,
			Notes:           order.Notes,
			Subtotal:        order.Subtotal.Amount,
			Tax:             order.Tax.Amount,
			Total:           order.Total.Amount,
			Currency:        order.Currency().String(),
			UserID:          order.UserID,
		})
		if err != nil {
			if isUniqueViolation(err, orderNumberConstraint) {
				return o, fmt.Errorf("q.InsertOrder[%s]: %w", order.OrderNumber, domain.ErrOrderNumberCollision)
			}
			return o, fmt.Errorf("q.InsertOrder: %w", err)
		}

		inserted := order
		inserted.ID = row.ID
		inserted.CreatedAt = row.CreatedAt
		inserted.UpdatedAt = row.UpdatedAt

		inserted.Status, err = domain.ToOrderStatus(row.Status)
		if err != nil {
			return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", row.Status, err)
		}

		inserted.PaymentStatus, err = domain.ToPaymentStatus(row.PaymentStatus)
		if err != nil {
			return o, fmt.Errorf("domain.ToPaymentStatus: %w", err)
		}

		inserted.Items = make([]domain.OrderItem, 0, len(order.Items))

		// TODO: batch with pgx.Batch once orders grow past a handful of lines
		for _, item := range order.Items {
			item.OrderID = row.ID

			itemRow, err := q.InsertOrderItem(ctx, mapDomainOrderItemToDBParams(item))
			if err != nil {
				return o, fmt.Errorf("q.InsertOrderItem: %w", err)
			}

			item.ID = itemRow.ID
			item.CreatedAt = itemRow.CreatedAt
			inserted.Items = append(inserted.Items, item)
		}

		return inserted, nil
	})
}

func (r *orderRepository) InsertOrderItem(ctx context.Context, item domain.OrderItem) (domain.OrderItem, error) {
	if item.OrderID == uuid.Nil {
		return item, errors.New("orderID is empty")
	}

	row, err := r.q.InsertOrderItem(ctx, mapDomainOrderItemToDBParams(item))
	if err != nil {
		return item, fmt.Errorf("q.InsertOrderItem: %w", err)
	}

	item.ID = row.ID
	item.CreatedAt = row.CreatedAt

	return item, nil
}

func (r *orderRepository) UpdateOrder(ctx context.Context, order domain.Order) error {
	if order.ID == uuid.Nil {
		return errors.New("orderID is empty")
	}

	cmdTag, err := r.q.UpdateOrder(ctx, db.UpdateOrderParams{
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		Notes:         order.Notes,
		ID:            order.ID,
	})
	if err != nil {
		return fmt.Errorf("q.UpdateOrder: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.UpdateOrder: %w", domain.ErrOrderNotFound)
	}

	return nil
}

func (r *orderRepository) UpdateOrderTotals(ctx context.Context, order domain.Order) error {
	if order.ID == uuid.Nil {
		return errors.New("orderID is empty")
	}

	cmdTag, err := r.q.UpdateOrderTotals(ctx, db.UpdateOrderTotalsParams{
		ID:       order.ID,
		Subtotal: order.Subtotal.Amount,
		Tax:      order.Tax.Amount,
		Total:    order.Total.Amount,
	})
	if err != nil {
		return fmt.Errorf("q.UpdateOrderTotals: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.UpdateOrderTotals: %w", domain.ErrOrderNotFound)
	}

	return nil
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status domain.PaymentStatus) error {
	if orderID == uuid.Nil {
		return errors.New("orderID is empty")
	}

	if _, err := domain.ToPaymentStatus(string(status)); err != nil {
		return fmt.Errorf("domain.ToPaymentStatus: %w", err)
	}

	cmdTag, err := r.q.UpdateOrderPaymentStatus(ctx, db.UpdateOrderPaymentStatusParams{
		ID:            orderID,
		PaymentStatus: string(status),
	})
	if err != nil {
		return fmt.Errorf("q.UpdateOrderPaymentStatus: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.UpdateOrderPaymentStatus: %w", domain.ErrOrderNotFound)
	}

	return nil
}

func mapDomainOrderFilterToDBFilter(filter domain.OrderFilter) db.SearchOrdersParams {
	statuses := lo.Map(filter.Statuses, func(s domain.OrderStatus, _ int) string {
		return string(s)
	})

	paymentStatuses := lo.Map(filter.PaymentStatuses, func(s domain.PaymentStatus, _ int) string {
		return string(s)
	})

	var createdAfter, createdBefore *time.Time

	if filter.CreatedAt != nil {
		createdAfter = filter.CreatedAt.After
		createdBefore = filter.CreatedAt.Before
	}

	limit := filter.Limit
	if limit == 0 {
		limit = defaultSearchLimit
	}

	return db.SearchOrdersParams{
		Ids:             nilSliceIfEmpty(filter.IDs),
		UserIds:         nilSliceIfEmpty(filter.UserIDs),
		Statuses:        nilSliceIfEmpty(statuses),
		PaymentStatuses: nilSliceIfEmpty(paymentStatuses),
		CreatedAfter:    createdAfter,
		CreatedBefore:   createdBefore,
		RowLimit:        int32(limit),
	}
}

func (r *orderRepository) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w", err)
	}

	dbOrders, err := r.q.SearchOrders(ctx, mapDomainOrderFilterToDBFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("q.SearchOrders: %w", err)
	}

	if len(dbOrders) == 0 {
		return nil, nil
	}

	orderIDs := lo.Map(dbOrders, func(o db.Order, _ int) uuid.UUID {
		return o.ID
	})

	dbItems, err := r.q.GetOrderItemsByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("q.GetOrderItemsByOrderIDs: %w", err)
	}

	itemsByOrder := lo.GroupBy(dbItems, func(item db.OrderItem) uuid.UUID {
		return item.OrderID
	})

	orders := make([]domain.Order, 0, len(dbOrders))
	for _, dbOrder := range dbOrders {
		order, err := mapDBOrderToDomain(dbOrder, itemsByOrder[dbOrder.ID])
		if err != nil {
			return nil, fmt.Errorf("mapDBOrderToDomain: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func mapDomainOrderItemToDBParams(item domain.OrderItem) db.InsertOrderItemParams {
	return db.InsertOrderItemParams{
		OrderID:    item.OrderID,
		ProductID:  item.ProductID,
		Quantity:   int32(item.Quantity),
		UnitPrice:  item.UnitPrice.Amount,
		TotalPrice: item.TotalPrice.Amount,
	}
}

func mapDBOrderItemToDomain(row db.OrderItem, cur currency.Unit) domain.OrderItem {
	return domain.OrderItem{
		ID:         row.ID,
		OrderID:    row.OrderID,
		ProductID:  row.ProductID,
		Quantity:   int(row.Quantity),
		UnitPrice:  domain.Money{Amount: row.UnitPrice, Currency: cur},
		TotalPrice: domain.Money{Amount: row.TotalPrice, Currency: cur},
		CreatedAt:  row.CreatedAt,
	}
}

func mapDBOrderToDomain(dbOrder db.Order, dbOrderItems []db.OrderItem) (domain.Order, error) {
	var o domain.Order

	cur, err := domain.ParseCurrency(dbOrder.Currency)
	if err != nil {
		return o, err
	}

	status, err := domain.ToOrderStatus(dbOrder.Status)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", dbOrder.Status, err)
	}

	paymentStatus, err := domain.ToPaymentStatus(dbOrder.PaymentStatus)
	if err != nil {
		return o, fmt.Errorf("domain.ToPaymentStatus: %w", err)
	}

	items := lo.Map(dbOrderItems, func(row db.OrderItem, _ int) domain.OrderItem {
		return mapDBOrderItemToDomain(row, cur)
	})

	return domain.Order{
		ID:              dbOrder.ID,
		OrderNumber:     dbOrder.OrderNumber,
		CustomerName:    dbOrder.CustomerName,
		ShippingAddress: dbOrder.ShippingAddress,
		Notes:           dbOrder.Notes,
		Subtotal:        domain.Money{Amount: dbOrder.Subtotal, Currency: cur},
		Tax:             domain.Money{Amount: dbOrder.Tax, Currency: cur},
		Total:           domain.Money{Amount: dbOrder.Total, Currency: cur},
		Status:          status,
		PaymentStatus:   paymentStatus,
		UserID:          dbOrder.UserID,
		Items:           items,
		CreatedAt:       dbOrder.CreatedAt,
		UpdatedAt:       dbOrder.UpdatedAt,
	}, nil
}
