package domain

import (
	"errors"
	"fmt"
)

type OrderStatus string

// remember to add new statuses to the validOrderStatuses map
const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var validOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusPending:    {},
	OrderStatusProcessing: {},
	OrderStatusShipped:    {},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// forward edges only; cancellation is handled by CanCancel
var orderStatusTransitions = map[OrderStatus]OrderStatus{
	OrderStatusPending:    OrderStatusProcessing,
	OrderStatusProcessing: OrderStatusShipped,
	OrderStatusShipped:    OrderStatusCompleted,
}

func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := validOrderStatuses[status]; ok {
		return status, nil
	}

	return "", errors.New("invalid order status")
}

func OrderStatuses() []OrderStatus {
	result := make([]OrderStatus, 0, len(validOrderStatuses))
	for status := range validOrderStatuses {
		result = append(result, status)
	}
	return result
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

func (s OrderStatus) CanCancel() bool {
	return !s.IsTerminal()
}

// ValidateTransition checks a move from s to next against the status graph.
func (s OrderStatus) ValidateTransition(next OrderStatus) error {
	if next == OrderStatusCancelled {
		if s.CanCancel() {
			return nil
		}
		return fmt.Errorf("%s -> %s: %w", s, next, ErrInvalidStatusTransition)
	}

	if allowed, ok := orderStatusTransitions[s]; ok && allowed == next {
		return nil
	}

	return fmt.Errorf("%s -> %s: %w", s, next, ErrInvalidStatusTransition)
}
