package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/backoffice/internal/db"
	"github.com/nikolayk812/backoffice/internal/domain"
	"github.com/nikolayk812/backoffice/internal/port"
	"github.com/samber/lo"
)

type settingRepository struct {
	q *db.Queries
}

func NewSetting(pool *pgxpool.Pool) port.SettingRepository {
	return &settingRepository{q: db.New(pool)}
}

func (r *settingRepository) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	rows, err := r.q.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListSettings: %w", err)
	}

	return lo.Map(rows, func(row db.Setting, _ int) domain.Setting {
		return domain.Setting{Key: row.Key, Value: row.Value, UpdatedAt: row.UpdatedAt}
	}), nil
}

func (r *settingRepository) UpsertSetting(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("key is empty")
	}

	if err := r.q.UpsertSetting(ctx, db.UpsertSettingParams{Key: key, Value: value}); err != nil {
		return fmt.Errorf("q.UpsertSetting: %w", err)
	}

	return nil
}
