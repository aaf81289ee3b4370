package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNoActiveCart      = errors.New("user has no active cart")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrCurrencyMismatch  = errors.New("currency mismatch")
	ErrInvalidInput      = errors.New("invalid input")
)

// Kinds are the stable error identifiers reported to API callers.
const (
	KindNoActiveCart       = "no_active_cart"
	KindEmptyCart          = "empty_cart"
	KindInsufficientStock  = "insufficient_stock"
	KindStockRaceLost      = "stock_race_lost"
	KindNotFound           = "not_found"
	KindInvalidTransition  = "invalid_transition"
	KindInvalidRequest     = "invalid_request"
	KindPersistenceFailure = "persistence_failure"
)

type InsufficientStockError struct {
	ProductID uuid.UUID
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: available %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

// StockRaceLostError means the guarded decrement matched no row because a
// concurrent placement consumed the stock first. The caller must resubmit.
type StockRaceLostError struct {
	ProductID uuid.UUID
}

func (e *StockRaceLostError) Error() string {
	return fmt.Sprintf("stock for product %s changed concurrently, resubmit the order", e.ProductID)
}

// KindOf classifies err. Anything that is not a business rule violation is a
// persistence failure.
func KindOf(err error) string {
	var (
		stockErr *InsufficientStockError
		raceErr  *StockRaceLostError
	)

	switch {
	case errors.Is(err, ErrNoActiveCart):
		return KindNoActiveCart
	case errors.Is(err, ErrEmptyCart):
		return KindEmptyCart
	case errors.As(err, &stockErr):
		return KindInsufficientStock
	case errors.As(err, &raceErr):
		return KindStockRaceLost
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrCurrencyMismatch):
		return KindInvalidRequest
	default:
		return KindPersistenceFailure
	}
}
