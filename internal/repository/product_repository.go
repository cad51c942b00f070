package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/backoffice/internal/db"
	"github.com/nikolayk812/backoffice/internal/domain"
	"github.com/nikolayk812/backoffice/internal/port"
)

type productRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *productRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	var p domain.Product

	dbProduct, err := r.q.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, fmt.Errorf("q.GetProduct: %w", domain.ErrProductNotFound)
		}
		return p, fmt.Errorf("q.GetProduct: %w", err)
	}

	product, err := mapDBProductToDomain(dbProduct)
	if err != nil {
		return p, fmt.Errorf("mapDBProductToDomain: %w", err)
	}

	return product, nil
}

func (r *productRepository) InsertProduct(ctx context.Context, product domain.NewProduct) (domain.Product, error) {
	var p domain.Product

	if err := product.Validate(); err != nil {
		return p, fmt.Errorf("product.Validate: %w", err)
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Product, error) {
		row, err := q.InsertProduct(ctx, db.InsertProductParams{
			Name:          product.Name,
			Sku:           product.SKU,
			PriceAmount:   product.Price.Amount,
			PriceCurrency: product.Price.Currency.String(),
			Status:        string(product.Status),
		})
		if err != nil {
			return p, fmt.Errorf("q.InsertProduct: %w", err)
		}

		if err := q.InsertInventory(ctx, db.InsertInventoryParams{
			ProductID:      row.ID,
			Stock:          int32(product.InitialStock),
			LowStockLevel:  int32(product.LowStockLevel),
			StockThreshold: int32(product.StockThreshold),
		}); err != nil {
			return p, fmt.Errorf("q.InsertInventory: %w", err)
		}

		return domain.Product{
			ID:        row.ID,
			Name:      product.Name,
			SKU:       product.SKU,
			Price:     product.Price,
			Status:    product.Status,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}, nil
	})
}

func mapDBProductToDomain(row db.Product) (domain.Product, error) {
	cur, err := domain.ParseCurrency(row.PriceCurrency)
	if err != nil {
		return domain.Product{}, err
	}

	status, err := domain.ToProductStatus(row.Status)
	if err != nil {
		return domain.Product{}, fmt.Errorf("domain.ToProductStatus[%s]: %w", row.Status, err)
	}

	return domain.Product{
		ID:        row.ID,
		Name:      row.Name,
		SKU:       row.Sku,
		Price:     domain.Money{Amount: row.PriceAmount, Currency: cur},
		Status:    status,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
