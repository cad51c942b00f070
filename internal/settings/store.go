// Package settings caches the settings table for cheap reads on hot paths.
package settings

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/nikolayk812/backoffice/internal/domain"
	"github.com/nikolayk812/backoffice/internal/port"
	"go.uber.org/zap"
)

const LowStockAlerts = "inventory.low_stock_alerts"

var defaults = map[string]string{
	LowStockAlerts: "true",
}

// Store is loaded explicitly with Reload; Set writes through to the table.
type Store struct {
	repo   port.SettingRepository
	logger *zap.Logger

	mu     sync.RWMutex
	values map[string]string
}

func NewStore(repo port.SettingRepository, logger *zap.Logger) *Store {
	values := make(map[string]string, len(defaults))
	for k, v := range defaults {
		values[k] = v
	}

	return &Store{repo: repo, logger: logger, values: values}
}

func (s *Store) Reload(ctx context.Context) error {
	rows, err := s.repo.ListSettings(ctx)
	if err != nil {
		return fmt.Errorf("repo.ListSettings: %w", err)
	}

	values := make(map[string]string, len(defaults)+len(rows))
	for k, v := range defaults {
		values[k] = v
	}
	for _, row := range rows {
		values[row.Key] = row.Value
	}

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()

	s.logger.Info("settings reloaded", zap.Int("count", len(rows)))

	return nil
}

func (s *Store) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("key[%s]: %w", key, domain.ErrSettingNotFound)
	}

	return v, nil
}

// Bool returns fallback when the key is missing or not a boolean.
func (s *Store) Bool(key string, fallback bool) bool {
	v, err := s.Get(key)
	if err != nil {
		return fallback
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		s.logger.Warn("setting is not a boolean", zap.String("key", key), zap.String("value", v))
		return fallback
	}

	return b
}

func (s *Store) All() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}

	return out
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.repo.UpsertSetting(ctx, key, value); err != nil {
		return fmt.Errorf("repo.UpsertSetting: %w", err)
	}

	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()

	return nil
}
