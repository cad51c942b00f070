package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ProductStatus string

// remember to add new statuses to the validProductStatuses map
const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusArchived ProductStatus = "archived"
)

var validProductStatuses = map[ProductStatus]struct{}{
	ProductStatusActive:   {},
	ProductStatusDraft:    {},
	ProductStatusArchived: {},
}

func ToProductStatus(s string) (ProductStatus, error) {
	status := ProductStatus(s)
	if _, ok := validProductStatuses[status]; ok {
		return status, nil
	}

	return "", errors.New("invalid product status")
}

type Product struct {
	ID     uuid.UUID
	Name   string
	SKU    string
	Price  Money
	Status ProductStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Product) Sellable() bool {
	return p.Status == ProductStatusActive
}

// NewProduct is the catalog input: the product plus the seed of its inventory row.
type NewProduct struct {
	Name           string
	SKU            string
	Price          Money
	Status         ProductStatus
	InitialStock   int
	LowStockLevel  int
	StockThreshold int
}

func (p NewProduct) Validate() error {
	if p.Name == "" {
		return ValidationError{Field: "name", Reason: "is empty"}
	}
	if p.SKU == "" {
		return ValidationError{Field: "sku", Reason: "is empty"}
	}
	if err := ValidateAmount(p.Price.Amount); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	if _, err := ToProductStatus(string(p.Status)); err != nil {
		return ValidationError{Field: "status", Reason: err.Error()}
	}
	if p.InitialStock < 0 || p.LowStockLevel < 0 || p.StockThreshold < 0 {
		return ValidationError{Field: "stock", Reason: "must not be negative"}
	}
	if p.InitialStock > MaxQuantity || p.LowStockLevel > MaxQuantity || p.StockThreshold > MaxQuantity {
		return fmt.Errorf("stock: %w", ErrInvalidQuantity)
	}

	return nil
}
