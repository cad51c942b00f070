package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/backoffice/internal/domain"
)

type ProductRepository interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	// InsertProduct creates the product and its inventory row together.
	InsertProduct(ctx context.Context, product domain.NewProduct) (domain.Product, error)
}

// InventoryRepository writes exactly one history row per stock mutation.
type InventoryRepository interface {
	GetInventory(ctx context.Context, productID uuid.UUID) (domain.Inventory, error)
	GetInventoryForUpdate(ctx context.Context, productID uuid.UUID) (domain.Inventory, error)

	Restock(ctx context.Context, adj domain.StockAdjustment) (domain.Inventory, error)
	Decrement(ctx context.Context, adj domain.StockAdjustment) (domain.Inventory, error)

	SearchHistories(ctx context.Context, filter domain.InventoryHistoryFilter) (domain.InventoryHistoryPage, error)
}
