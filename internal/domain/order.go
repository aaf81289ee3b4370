package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped: {OrderStatusDelivered},
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch status := OrderStatus(s); status {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return status, true
	}
	return "", false
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID     uuid.UUID
	UserID string
	Status OrderStatus
	Total  Money
	Lines  []OrderLine
	Active bool

	CreatedAt time.Time
}

// OrderLine is a frozen copy of a cart line taken at placement time.
type OrderLine struct {
	ProductID uuid.UUID
	UnitPrice Money
	Quantity  int
	LineTotal Money
}

type PlacedOrder struct {
	OrderID uuid.UUID
	Total   Money
}

func OrderLinesFromCart(lines []CartLine) []OrderLine {
	result := make([]OrderLine, 0, len(lines))
	for _, line := range lines {
		result = append(result, OrderLine{
			ProductID: line.ProductID,
			UnitPrice: line.Price,
			Quantity:  line.Quantity,
			LineTotal: line.Price.Mul(line.Quantity),
		})
	}
	return result
}
