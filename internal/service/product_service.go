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

type ProductService struct {
	products port.ProductRepository
	emitter  events.Emitter
	logger   *zap.Logger
	tracer   trace.Tracer
}

func NewProductService(products port.ProductRepository, emitter events.Emitter, logger *zap.Logger, tracer trace.Tracer) *ProductService {
	return &ProductService{
		products: products,
		emitter:  emitter,
		logger:   logger,
		tracer:   tracer,
	}
}

// CreateProduct adds a catalog entry together with its inventory row.
func (s *ProductService) CreateProduct(ctx context.Context, actorID uuid.UUID, in domain.NewProduct) (_ domain.Product, err error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.CreateProduct")
	defer func() { endSpan(span, err) }()

	product, err := s.products.InsertProduct(ctx, in)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.InsertProduct: %w", err)
	}

	span.SetAttributes(attribute.String("product.id", product.ID.String()))

	s.logger.Info("product created",
		zap.String("method", "CreateProduct"),
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU),
	)

	s.emitter.Audit(ctx, events.AuditRecord{
		Entity:   "product",
		EntityID: product.ID,
		Action:   events.AuditActionCreate,
		ActorID:  actorID,
		After:    events.Snapshot(product),
	})

	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, productID uuid.UUID) (_ domain.Product, err error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProduct")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.String("product.id", productID.String()))

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.GetProduct: %w", err)
	}

	return product, nil
}
