package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// TaxRate is applied to the order subtotal at creation time.
var TaxRate = decimal.RequireFromString("0.10")

type Order struct {
	ID              uuid.UUID
	OrderNumber     string
	CustomerName    string
	ShippingAddress string
	Notes           string
	Subtotal        Money
	Tax             Money
	Total           Money
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	UserID          uuid.UUID
	Items           []OrderItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	ProductID  uuid.UUID
	Quantity   int
	UnitPrice  Money
	TotalPrice Money

	CreatedAt time.Time
}

// NewOrderItem snapshots the product price; the live price is never re-read afterwards.
func NewOrderItem(product Product, quantity int) (OrderItem, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return OrderItem{}, err
	}

	total := product.Price.Mul(quantity)
	if total.Amount.GreaterThanOrEqual(MaxAmount) {
		return OrderItem{}, fmt.Errorf("line total[%s]: %w", total, ErrInvalidAmount)
	}

	return OrderItem{
		ProductID:  product.ID,
		Quantity:   quantity,
		UnitPrice:  product.Price,
		TotalPrice: total,
	}, nil
}

type Totals struct {
	Subtotal Money
	Tax      Money
	Total    Money
}

func ComputeTotals(cur currency.Unit, items []OrderItem) (Totals, error) {
	subtotal := ZeroMoney(cur)

	for _, item := range items {
		var err error
		subtotal, err = subtotal.Add(item.TotalPrice)
		if err != nil {
			return Totals{}, err
		}
	}

	subtotal = subtotal.Round()
	tax := Money{Amount: subtotal.Amount.Mul(TaxRate), Currency: cur}.Round()

	total, err := subtotal.Add(tax)
	if err != nil {
		return Totals{}, err
	}
	if total.Amount.GreaterThanOrEqual(MaxAmount) {
		return Totals{}, fmt.Errorf("order total[%s]: %w", total, ErrInvalidAmount)
	}

	return Totals{Subtotal: subtotal, Tax: tax, Total: total}, nil
}

func (o *Order) ApplyTotals(t Totals) {
	o.Subtotal = t.Subtotal
	o.Tax = t.Tax
	o.Total = t.Total
}

func (o Order) Currency() currency.Unit {
	return o.Subtotal.Currency
}

type OrderLine struct {
	ProductID uuid.UUID
	Quantity  int
}

type CreateOrderInput struct {
	CustomerName    string
	ShippingAddress string
	Notes           string
	Items           []OrderLine
}

func (in CreateOrderInput) Validate() error {
	if in.CustomerName == "" {
		return ValidationError{Field: "customerName", Reason: "is empty"}
	}
	if in.ShippingAddress == "" {
		return ValidationError{Field: "shippingAddress", Reason: "is empty"}
	}
	if len(in.Items) == 0 {
		return ValidationError{Field: "items", Reason: "no items in order"}
	}

	for _, line := range in.Items {
		if line.ProductID == uuid.Nil {
			return ValidationError{Field: "items.productId", Reason: "is empty"}
		}
		if err := ValidateQuantity(line.Quantity); err != nil {
			return err
		}
	}

	for _, line := range in.MergedLines() {
		if err := ValidateQuantity(line.Quantity); err != nil {
			return fmt.Errorf("product[%s]: %w", line.ProductID, err)
		}
	}

	return nil
}

// MergedLines sums quantities of lines for the same product, keeping first-seen order.
func (in CreateOrderInput) MergedLines() []OrderLine {
	index := make(map[uuid.UUID]int, len(in.Items))
	merged := make([]OrderLine, 0, len(in.Items))

	for _, line := range in.Items {
		if i, ok := index[line.ProductID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}

	return merged
}

type UpdateOrderInput struct {
	Status        *OrderStatus
	PaymentStatus *PaymentStatus
	Notes         *string
}

func (in UpdateOrderInput) IsEmpty() bool {
	return in.Status == nil && in.PaymentStatus == nil && in.Notes == nil
}

type AddOrderItemInput struct {
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
}
