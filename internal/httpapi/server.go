// Package httpapi exposes the back-office operations over HTTP with gin.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/backoffice/internal/authz"
	"github.com/nikolayk812/backoffice/internal/domain"
	"go.uber.org/zap"
)

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
	actorKey       = "actor"

	// createOrderAttempts bounds retries on order number collisions
	createOrderAttempts = 3
)

type OrderService interface {
	CreateOrder(ctx context.Context, actorID uuid.UUID, in domain.CreateOrderInput) (domain.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	UpdateOrder(ctx context.Context, orderID, actorID uuid.UUID, in domain.UpdateOrderInput) (domain.Order, error)
	DeleteOrder(ctx context.Context, orderID, actorID uuid.UUID) error
	AddOrderItem(ctx context.Context, actorID uuid.UUID, in domain.AddOrderItemInput) (domain.Order, error)
}

type PaymentService interface {
	CreatePayment(ctx context.Context, actorID uuid.UUID, in domain.CreatePaymentInput) (domain.Payment, error)
	GetPayment(ctx context.Context, paymentID uuid.UUID) (domain.Payment, error)
	ListOrderPayments(ctx context.Context, orderID uuid.UUID) ([]domain.Payment, error)
	UpdatePayment(ctx context.Context, paymentID, actorID uuid.UUID, in domain.UpdatePaymentInput) (domain.Payment, error)
	DeletePayment(ctx context.Context, paymentID, actorID uuid.UUID) error
}

type InventoryService interface {
	Restock(ctx context.Context, adj domain.StockAdjustment) (domain.Inventory, error)
	GetByProductID(ctx context.Context, productID uuid.UUID) (domain.Inventory, error)
	GetHistories(ctx context.Context, filter domain.InventoryHistoryFilter) (domain.InventoryHistoryPage, error)
}

type ProductService interface {
	CreateProduct(ctx context.Context, actorID uuid.UUID, in domain.NewProduct) (domain.Product, error)
}

type JobStatus interface {
	Status(ctx context.Context, jobID uuid.UUID) (domain.Job, error)
}

type Settings interface {
	All() map[string]string
	Set(ctx context.Context, key, value string) error
	Reload(ctx context.Context) error
}

type Services struct {
	Orders    OrderService
	Payments  PaymentService
	Inventory InventoryService
	Products  ProductService
	Jobs      JobStatus
	Settings  Settings
}

type Handler struct {
	svc    Services
	logger *zap.Logger
}

func NewHandler(svc Services, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.accessLog())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := r.Group("/", h.authenticate())

	api.POST("/orders", h.authorize(authz.OrdersCreate), h.createOrder)
	api.GET("/orders", h.authorize(authz.OrdersRead), h.searchOrders)
	api.GET("/orders/:id", h.authorize(authz.OrdersRead), h.getOrder)
	api.PATCH("/orders/:id", h.authorize(authz.OrdersUpdate), h.updateOrder)
	api.DELETE("/orders/:id", h.authorize(authz.OrdersDelete), h.deleteOrder)
	api.POST("/orders/:id/items", h.authorize(authz.OrdersUpdate), h.addOrderItem)
	api.GET("/orders/:id/payments", h.authorize(authz.PaymentsRead), h.listOrderPayments)

	api.POST("/payments/:orderId", h.authorize(authz.PaymentsCreate), h.createPayment)
	api.GET("/payments/:id", h.authorize(authz.PaymentsRead), h.getPayment)
	api.PATCH("/payments/:id", h.authorize(authz.PaymentsUpdate), h.updatePayment)
	api.DELETE("/payments/:id", h.authorize(authz.PaymentsDelete), h.deletePayment)

	api.GET("/inventory/histories", h.authorize(authz.InventoryRead), h.getHistories)
	api.GET("/inventory/:productId", h.authorize(authz.InventoryRead), h.getInventory)
	api.POST("/inventory/:productId/restock", h.authorize(authz.InventoryUpdate), h.restock)

	api.POST("/products", h.authorize(authz.ProductsCreate), h.createProduct)

	api.GET("/jobs/:id", h.authorize(authz.JobsRead), h.getJob)

	api.GET("/settings", h.authorize(authz.SettingsRead), h.listSettings)
	api.PUT("/settings/:key", h.authorize(authz.SettingsUpdate), h.putSetting)
	api.POST("/settings/reload", h.authorize(authz.SettingsUpdate), h.reloadSettings)

	return r
}

// authenticate trusts the identity headers set by the upstream gateway.
func (h *Handler) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader(headerUserID))
		if err != nil || id == uuid.Nil {
			h.writeError(c, authz.ErrUnauthenticated)
			return
		}

		role, err := authz.ToRole(c.GetHeader(headerUserRole))
		if err != nil {
			h.writeError(c, err)
			return
		}

		c.Set(actorKey, authz.Actor{ID: id, Role: role})
		c.Next()
	}
}

func (h *Handler) authorize(action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authz.Authorize(actorFrom(c), action); err != nil {
			h.writeError(c, err)
			return
		}
		c.Next()
	}
}

func (h *Handler) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		h.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func actorFrom(c *gin.Context) authz.Actor {
	actor, _ := c.Get(actorKey)
	a, _ := actor.(authz.Actor)
	return a
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, name+" is not a valid uuid")
		return uuid.Nil, false
	}
	return id, true
}
