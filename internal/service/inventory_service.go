package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/backoffice/internal/domain"
	"github.com/nikolayk812/backoffice/internal/events"
	"github.com/nikolayk812/backoffice/internal/port"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type InventoryService struct {
	inventory port.InventoryRepository
	alerts    *LowStockAlerts
	emitter   events.Emitter
	logger    *zap.Logger
	tracer    trace.Tracer
}

func NewInventoryService(
	inventory port.InventoryRepository,
	alerts *LowStockAlerts,
	emitter events.Emitter,
	logger *zap.Logger,
	tracer trace.Tracer,
) *InventoryService {
	return &InventoryService{
		inventory: inventory,
		alerts:    alerts,
		emitter:   emitter,
		logger:    logger,
		tracer:    tracer,
	}
}

func (s *InventoryService) Restock(ctx context.Context, adj domain.StockAdjustment) (_ domain.Inventory, err error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.Restock")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(
		attribute.String("product.id", adj.ProductID.String()),
		attribute.Int("inventory.quantity", adj.Quantity),
	)

	inv, err := s.inventory.Restock(ctx, adj)
	if err != nil {
		return domain.Inventory{}, fmt.Errorf("inventory.Restock: %w", err)
	}

	s.logger.Info("stock restocked",
		zap.String("method", "Restock"),
		zap.String("product_id", adj.ProductID.String()),
		zap.Int("quantity", adj.Quantity),
		zap.Int("stock", inv.Stock),
	)

	s.emitter.Audit(ctx, events.AuditRecord{
		Entity:   "inventory",
		EntityID: adj.ProductID,
		Action:   events.AuditActionRestock,
		ActorID:  adj.ActorID,
		After:    events.Snapshot(inv),
	})

	return inv, nil
}

func (s *InventoryService) Decrement(ctx context.Context, adj domain.StockAdjustment) (_ domain.Inventory, err error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.Decrement")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(
		attribute.String("product.id", adj.ProductID.String()),
		attribute.Int("inventory.quantity", adj.Quantity),
	)

	inv, err := s.inventory.Decrement(ctx, adj)
	if err != nil {
		return domain.Inventory{}, fmt.Errorf("inventory.Decrement: %w", err)
	}

	s.alerts.Check(ctx, inv)

	return inv, nil
}

func (s *InventoryService) GetByProductID(ctx context.Context, productID uuid.UUID) (_ domain.Inventory, err error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.GetByProductID")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.String("product.id", productID.String()))

	inv, err := s.inventory.GetInventory(ctx, productID)
	if err != nil {
		return domain.Inventory{}, fmt.Errorf("inventory.GetInventory: %w", err)
	}

	return inv, nil
}

func (s *InventoryService) GetHistories(ctx context.Context, filter domain.InventoryHistoryFilter) (_ domain.InventoryHistoryPage, err error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.GetHistories")
	defer func() { endSpan(span, err) }()

	page, err := s.inventory.SearchHistories(ctx, filter)
	if err != nil {
		return domain.InventoryHistoryPage{}, fmt.Errorf("inventory.SearchHistories: %w", err)
	}

	span.SetAttributes(attribute.Int64("inventory.histories.total", page.Total))

	return page, nil
}
