package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Inventory is the current stock of one product. Stock never goes below zero.
type Inventory struct {
	ProductID       uuid.UUID
	Stock           int
	LowStockLevel   int
	StockThreshold  int
	LastRestockedAt *time.Time
	UpdatedAt       time.Time
}

func (i Inventory) IsLow() bool {
	return i.Stock <= i.LowStockLevel
}

// InventoryHistory is one append-only ledger entry; Change is positive for restocks.
type InventoryHistory struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Change    int
	Reason    string
	UserID    uuid.UUID
	CreatedAt time.Time
}

// MaxQuantity is the largest quantity the ledger columns hold.
const MaxQuantity = math.MaxInt32

func ValidateQuantity(quantity int) error {
	if quantity <= 0 || quantity > MaxQuantity {
		return fmt.Errorf("quantity[%d]: %w", quantity, ErrInvalidQuantity)
	}

	return nil
}

type StockAdjustment struct {
	ProductID uuid.UUID
	Quantity  int
	Reason    string
	ActorID   uuid.UUID
}

func (a StockAdjustment) Validate() error {
	if a.ProductID == uuid.Nil {
		return ValidationError{Field: "productId", Reason: "is empty"}
	}
	if err := ValidateQuantity(a.Quantity); err != nil {
		return err
	}
	if a.Reason == "" {
		return ValidationError{Field: "reason", Reason: "is empty"}
	}

	return nil
}

func OrderPlacedReason(orderNumber string) string {
	return "add new order:" + orderNumber
}

func OrderItemAddedReason(orderNumber string) string {
	return "add item to order:" + orderNumber
}

func OrderCancelledReason(orderNumber string) string {
	return fmt.Sprintf("Order %s cancelled", orderNumber)
}
