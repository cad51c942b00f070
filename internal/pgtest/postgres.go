// Package pgtest starts a throwaway PostgreSQL for integration tests.
package pgtest

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nikolayk812/backoffice/internal/db"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const image = "postgres:17-alpine"

// StartPostgres runs a container, applies the schema and returns its connection string.
func StartPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase("backoffice"),
		postgres.WithUsername("backoffice"),
		postgres.WithPassword("backoffice"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return container, "", fmt.Errorf("pgx.Connect: %w", err)
	}
	defer conn.Close(ctx)

	if err := db.Migrate(ctx, conn); err != nil {
		return container, "", fmt.Errorf("db.Migrate: %w", err)
	}

	return container, connStr, nil
}

// Truncate empties every table between test cases.
func Truncate(ctx context.Context, dbtx db.DBTX) error {
	_, err := dbtx.Exec(ctx, "TRUNCATE TABLE payments, order_items, orders, inventory_histories, inventories, products, jobs, settings CASCADE")
	if err != nil {
		return fmt.Errorf("dbtx.Exec: %w", err)
	}

	return nil
}
