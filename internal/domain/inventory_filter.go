package domain

import (
	"github.com/google/uuid"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100

	// maxPage keeps the row offset within int32.
	maxPage = MaxQuantity / MaxPageLimit
)

// InventoryHistoryFilter has AND semantics across the set fields.
type InventoryHistoryFilter struct {
	ProductID      *uuid.UUID
	UserID         *uuid.UUID
	ReasonContains string
	Page           int
	Limit          int
}

// Normalize applies paging defaults and clamps the limit.
func (f InventoryHistoryFilter) Normalize() InventoryHistoryFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Page > maxPage {
		f.Page = maxPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
	return f
}

func (f InventoryHistoryFilter) Offset() int {
	n := f.Normalize()
	return (n.Page - 1) * n.Limit
}

type InventoryHistoryPage struct {
	Items []InventoryHistory
	Total int64
	Page  int
	Limit int
}
