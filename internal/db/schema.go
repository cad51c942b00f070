package db

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var Schema string

// Migrate applies the idempotent schema. It runs without arguments, so pgx
// sends it over the simple protocol and multiple statements are allowed.
func Migrate(ctx context.Context, dbtx DBTX) error {
	if _, err := dbtx.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("dbtx.Exec: %w", err)
	}

	return nil
}
