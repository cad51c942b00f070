package service

import (
	"context"
	"fmt"

	"github.com/nikolayk812/backoffice/internal/domain"
	"github.com/nikolayk812/backoffice/internal/events"
	"github.com/nikolayk812/backoffice/internal/jobs"
	"github.com/nikolayk812/backoffice/internal/settings"
	"go.uber.org/zap"
)

type lowStockPayload struct {
	ProductID     string `json:"productId"`
	Stock         int    `json:"stock"`
	LowStockLevel int    `json:"lowStockLevel"`
}

// LowStockAlerts raises a notification and a replenishment job for inventories at or below their low level.
type LowStockAlerts struct {
	flags   FeatureFlags
	emitter events.Emitter
	runner  events.Runner
	queue   JobQueue
	logger  *zap.Logger
}

func NewLowStockAlerts(flags FeatureFlags, emitter events.Emitter, runner events.Runner, queue JobQueue, logger *zap.Logger) *LowStockAlerts {
	return &LowStockAlerts{flags: flags, emitter: emitter, runner: runner, queue: queue, logger: logger}
}

// Check runs after commit and never blocks on the job transport: the enqueue
// is handed to the runner. Failures are logged and never reach the caller.
func (a *LowStockAlerts) Check(ctx context.Context, inventories ...domain.Inventory) {
	if a == nil || !a.flags.Bool(settings.LowStockAlerts, true) {
		return
	}

	for _, inv := range inventories {
		if !inv.IsLow() {
			continue
		}

		a.emitter.Notify(ctx, events.Notification{
			Type:     events.NotificationLowStock,
			EntityID: inv.ProductID,
			Message:  fmt.Sprintf("stock %d is at or below low level %d", inv.Stock, inv.LowStockLevel),
			Data: map[string]any{
				"stock":         inv.Stock,
				"lowStockLevel": inv.LowStockLevel,
			},
		})

		payload := lowStockPayload{
			ProductID:     inv.ProductID.String(),
			Stock:         inv.Stock,
			LowStockLevel: inv.LowStockLevel,
		}

		accepted := a.runner.Go(ctx, jobs.LowStockJob, func(ctx context.Context) error {
			if _, err := a.queue.Enqueue(ctx, jobs.LowStockJob, payload); err != nil {
				return fmt.Errorf("product[%s] queue.Enqueue: %w", payload.ProductID, err)
			}
			return nil
		})
		if !accepted {
			a.logger.Warn("low stock job dropped", zap.String("product_id", payload.ProductID))
		}
	}
}
