package httpapi

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/backoffice/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type OrderLineRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"max=2147483647"`
}

// CreateOrderRequest for POST /orders
type CreateOrderRequest struct {
	CustomerName    string             `json:"customerName" binding:"required"`
	ShippingAddress string             `json:"shippingAddress" binding:"required"`
	Notes           string             `json:"notes"`
	Items           []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderRequest for PATCH /orders/:id
type UpdateOrderRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
	Notes         *string `json:"notes"`
}

// AddOrderItemRequest for POST /orders/:id/items
type AddOrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"max=2147483647"`
}

// CreatePaymentRequest for POST /payments/:orderId
type CreatePaymentRequest struct {
	Status        string          `json:"status" binding:"required"`
	Method        string          `json:"method" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	PaidAt        *time.Time      `json:"paidAt"`
	TransactionID string          `json:"transactionId"`
	Notes         string          `json:"notes"`
}

// UpdatePaymentRequest for PATCH /payments/:id
type UpdatePaymentRequest struct {
	Status        *string          `json:"status"`
	Method        *string          `json:"method"`
	Amount        *decimal.Decimal `json:"amount"`
	PaidAt        *time.Time       `json:"paidAt"`
	TransactionID *string          `json:"transactionId"`
	Notes         *string          `json:"notes"`
}

// RestockRequest for POST /inventory/:productId/restock
type RestockRequest struct {
	Quantity int    `json:"quantity" binding:"max=2147483647"`
	Reason   string `json:"reason" binding:"required"`
}

// CreateProductRequest for POST /products
type CreateProductRequest struct {
	Name           string          `json:"name" binding:"required"`
	SKU            string          `json:"sku" binding:"required"`
	Price          decimal.Decimal `json:"price"`
	Currency       string          `json:"currency" binding:"required,len=3"`
	Status         string          `json:"status"`
	InitialStock   int             `json:"initialStock" binding:"min=0,max=2147483647"`
	LowStockLevel  int             `json:"lowStockLevel" binding:"min=0,max=2147483647"`
	StockThreshold int             `json:"stockThreshold" binding:"min=0,max=2147483647"`
}

// PutSettingRequest for PUT /settings/:key
type PutSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

type OrderItemResponse struct {
	ID         uuid.UUID    `json:"id"`
	ProductID  uuid.UUID    `json:"productId"`
	Quantity   int          `json:"quantity"`
	UnitPrice  domain.Money `json:"unitPrice"`
	TotalPrice domain.Money `json:"totalPrice"`
	CreatedAt  time.Time    `json:"createdAt"`
}

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	OrderNumber     string              `json:"orderNumber"`
	CustomerName    string              `json:"customerName"`
	ShippingAddress string              `json:"shippingAddress"`
	Notes           string              `json:"notes"`
	Subtotal        domain.Money        `json:"subtotal"`
	Tax             domain.Money        `json:"tax"`
	Total           domain.Money        `json:"total"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"paymentStatus"`
	UserID          uuid.UUID           `json:"userId"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

type PaymentResponse struct {
	ID            uuid.UUID    `json:"id"`
	OrderID       uuid.UUID    `json:"orderId"`
	Status        string       `json:"status"`
	Method        string       `json:"method"`
	Amount        domain.Money `json:"amount"`
	PaidAt        *time.Time   `json:"paidAt,omitempty"`
	TransactionID string       `json:"transactionId,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

type InventoryResponse struct {
	ProductID       uuid.UUID  `json:"productId"`
	Stock           int        `json:"stock"`
	LowStockLevel   int        `json:"lowStockLevel"`
	StockThreshold  int        `json:"stockThreshold"`
	LastRestockedAt *time.Time `json:"lastRestockedAt,omitempty"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type InventoryHistoryResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	Change    int       `json:"change"`
	Reason    string    `json:"reason"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type InventoryHistoryPageResponse struct {
	Items []InventoryHistoryResponse `json:"items"`
	Total int64                      `json:"total"`
	Page  int                        `json:"page"`
	Limit int                        `json:"limit"`
}

type ProductResponse struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	SKU       string       `json:"sku"`
	Price     domain.Money `json:"price"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type JobResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload"`
	Status    string          `json:"status"`
	MessageID string          `json:"messageId,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func toOrderResponse(o domain.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		ShippingAddress: o.ShippingAddress,
		Notes:           o.Notes,
		Subtotal:        o.Subtotal,
		Tax:             o.Tax,
		Total:           o.Total,
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		UserID:          o.UserID,
		Items: lo.Map(o.Items, func(item domain.OrderItem, _ int) OrderItemResponse {
			return OrderItemResponse{
				ID:         item.ID,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				UnitPrice:  item.UnitPrice,
				TotalPrice: item.TotalPrice,
				CreatedAt:  item.CreatedAt,
			}
		}),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func toPaymentResponse(p domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		Status:        string(p.Status),
		Method:        string(p.Method),
		Amount:        p.Amount,
		PaidAt:        p.PaidAt,
		TransactionID: p.TransactionID,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toInventoryResponse(i domain.Inventory) InventoryResponse {
	return InventoryResponse{
		ProductID:       i.ProductID,
		Stock:           i.Stock,
		LowStockLevel:   i.LowStockLevel,
		StockThreshold:  i.StockThreshold,
		LastRestockedAt: i.LastRestockedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

func toHistoryPageResponse(p domain.InventoryHistoryPage) InventoryHistoryPageResponse {
	return InventoryHistoryPageResponse{
		Items: lo.Map(p.Items, func(h domain.InventoryHistory, _ int) InventoryHistoryResponse {
			return InventoryHistoryResponse(h)
		}),
		Total: p.Total,
		Page:  p.Page,
		Limit: p.Limit,
	}
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Price:     p.Price,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toJobResponse(j domain.Job) JobResponse {
	return JobResponse{
		ID:        j.ID,
		Name:      j.Name,
		Payload:   j.Payload,
		Status:    string(j.Status),
		MessageID: j.MessageID,
		Error:     j.Error,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}
