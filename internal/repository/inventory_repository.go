package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/backoffice/internal/db"
	"github.com/nikolayk812/backoffice/internal/domain"
	"github.com/nikolayk812/backoffice/internal/port"
	"github.com/samber/lo"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type inventoryRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewInventory(pool *pgxpool.Pool) port.InventoryRepository {
	return &inventoryRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewInventoryWithTx(tx pgx.Tx) port.InventoryRepository {
	return &inventoryRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *inventoryRepository) GetInventory(ctx context.Context, productID uuid.UUID) (domain.Inventory, error) {
	dbInventory, err := r.q.GetInventory(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Inventory{}, fmt.Errorf("q.GetInventory: %w", domain.ErrInventoryNotFound)
		}
		return domain.Inventory{}, fmt.Errorf("q.GetInventory: %w", err)
	}

	return mapDBInventoryToDomain(dbInventory), nil
}

func (r *inventoryRepository) GetInventoryForUpdate(ctx context.Context, productID uuid.UUID) (domain.Inventory, error) {
	dbInventory, err := r.q.GetInventoryForUpdate(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Inventory{}, fmt.Errorf("q.GetInventoryForUpdate: %w", domain.ErrInventoryNotFound)
		}
		return domain.Inventory{}, fmt.Errorf("q.GetInventoryForUpdate: %w", err)
	}

	return mapDBInventoryToDomain(dbInventory), nil
}

func (r *inventoryRepository) Restock(ctx context.Context, adj domain.StockAdjustment) (domain.Inventory, error) {
	if err := adj.Validate(); err != nil {
		return domain.Inventory{}, fmt.Errorf("adj.Validate: %w", err)
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Inventory, error) {
		dbInventory, err := q.IncrementStock(ctx, db.IncrementStockParams{
			Quantity:  int32(adj.Quantity),
			ProductID: adj.ProductID,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.Inventory{}, fmt.Errorf("q.IncrementStock: %w", domain.ErrInventoryNotFound)
			}
			if isOutOfRange(err) {
				return domain.Inventory{}, fmt.Errorf("q.IncrementStock: stock above %d: %w", domain.MaxQuantity, domain.ErrInvalidQuantity)
			}
			return domain.Inventory{}, fmt.Errorf("q.IncrementStock: %w", err)
		}

		if err := insertHistory(ctx, q, adj, adj.Quantity); err != nil {
			return domain.Inventory{}, err
		}

		return mapDBInventoryToDomain(dbInventory), nil
	})
}

// Decrement is one conditional update; zero rows means either no inventory row or not enough stock.
func (r *inventoryRepository) Decrement(ctx context.Context, adj domain.StockAdjustment) (domain.Inventory, error) {
	if err := adj.Validate(); err != nil {
		return domain.Inventory{}, fmt.Errorf("adj.Validate: %w", err)
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Inventory, error) {
		dbInventory, err := q.DecrementStock(ctx, db.DecrementStockParams{
			Quantity:  int32(adj.Quantity),
			ProductID: adj.ProductID,
		})
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return domain.Inventory{}, fmt.Errorf("q.DecrementStock: %w", err)
			}

			current, getErr := q.GetInventory(ctx, adj.ProductID)
			if getErr != nil {
				if errors.Is(getErr, pgx.ErrNoRows) {
					return domain.Inventory{}, fmt.Errorf("q.DecrementStock: %w", domain.ErrInventoryNotFound)
				}
				return domain.Inventory{}, fmt.Errorf("q.GetInventory: %w", getErr)
			}

			return domain.Inventory{}, fmt.Errorf("q.DecrementStock: stock[%d] < quantity[%d]: %w",
				current.Stock, adj.Quantity, domain.ErrInsufficientStock)
		}

		if err := insertHistory(ctx, q, adj, -adj.Quantity); err != nil {
			return domain.Inventory{}, err
		}

		return mapDBInventoryToDomain(dbInventory), nil
	})
}

func insertHistory(ctx context.Context, q *db.Queries, adj domain.StockAdjustment, change int) error {
	_, err := q.InsertInventoryHistory(ctx, db.InsertInventoryHistoryParams{
		ProductID: adj.ProductID,
		Change:    int32(change),
		Reason:    adj.Reason,
		UserID:    adj.ActorID,
	})
	if err != nil {
		return fmt.Errorf("q.InsertInventoryHistory: %w", err)
	}

	return nil
}

func (r *inventoryRepository) SearchHistories(ctx context.Context, filter domain.InventoryHistoryFilter) (domain.InventoryHistoryPage, error) {
	filter = filter.Normalize()

	var reason *string
	if filter.ReasonContains != "" {
		reason = lo.ToPtr(likeEscaper.Replace(filter.ReasonContains))
	}

	rows, err := r.q.SearchInventoryHistories(ctx, db.SearchInventoryHistoriesParams{
		ProductID: filter.ProductID,
		UserID:    filter.UserID,
		Reason:    reason,
		RowLimit:  int32(filter.Limit),
		RowOffset: int32(filter.Offset()),
	})
	if err != nil {
		return domain.InventoryHistoryPage{}, fmt.Errorf("q.SearchInventoryHistories: %w", err)
	}

	page := domain.InventoryHistoryPage{
		Items: make([]domain.InventoryHistory, 0, len(rows)),
		Page:  filter.Page,
		Limit: filter.Limit,
	}

	for _, row := range rows {
		page.Items = append(page.Items, mapSearchInventoryHistoriesRowToDomain(row))
		page.Total = row.TotalCount
	}

	// window count is unavailable past the last page
	if len(rows) == 0 {
		page.Total, err = r.q.CountInventoryHistories(ctx, db.CountInventoryHistoriesParams{
			ProductID: filter.ProductID,
			UserID:    filter.UserID,
			Reason:    reason,
		})
		if err != nil {
			return domain.InventoryHistoryPage{}, fmt.Errorf("q.CountInventoryHistories: %w", err)
		}
	}

	return page, nil
}

func mapDBInventoryToDomain(row db.Inventory) domain.Inventory {
	return domain.Inventory{
		ProductID:       row.ProductID,
		Stock:           int(row.Stock),
		LowStockLevel:   int(row.LowStockLevel),
		StockThreshold:  int(row.StockThreshold),
		LastRestockedAt: row.LastRestockedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func mapSearchInventoryHistoriesRowToDomain(row db.SearchInventoryHistoriesRow) domain.InventoryHistory {
	return domain.InventoryHistory{
		ID:        row.ID,
		ProductID: row.ProductID,
		Change:    int(row.Change),
		Reason:    row.Reason,
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt,
	}
}
