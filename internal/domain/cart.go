package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	ID      uuid.UUID
	OwnerID string
	Items   []CartItem
}

type CartItem struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	Price       Money

	CreatedAt time.Time
}

// CartLine is an active cart item joined with the current product row.
type CartLine struct {
	ProductID     uuid.UUID
	Quantity      int
	Price         Money
	Stock         int
	ProductActive bool
}

// ConsolidateLines merges lines that reference the same product, keeping the
// first-seen order. Quantities must be positive.
func ConsolidateLines(lines []CartLine) ([]CartLine, error) {
	index := make(map[uuid.UUID]int, len(lines))
	result := make([]CartLine, 0, len(lines))

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("product[%s] has non-positive quantity %d", line.ProductID, line.Quantity)
		}

		if i, ok := index[line.ProductID]; ok {
			result[i].Quantity += line.Quantity
			continue
		}

		index[line.ProductID] = len(result)
		result = append(result, line)
	}

	return result, nil
}

// CheckStock returns an *InsufficientStockError for the first line the
// snapshot cannot satisfy.
func CheckStock(lines []CartLine) error {
	for _, line := range lines {
		available := line.Stock
		if !line.ProductActive {
			available = 0
		}

		if available < line.Quantity {
			return &InsufficientStockError{
				ProductID: line.ProductID,
				Available: available,
				Requested: line.Quantity,
			}
		}
	}

	return nil
}

// Total sums unit price times quantity over all lines.
func Total(lines []CartLine) (Money, error) {
	if len(lines) == 0 {
		return Money{}, ErrEmptyCart
	}

	total := lines[0].Price.Mul(lines[0].Quantity)
	for _, line := range lines[1:] {
		var err error
		total, err = total.Add(line.Price.Mul(line.Quantity))
		if err != nil {
			return Money{}, err
		}
	}

	return total, nil
}

func ProductIDs(lines []CartLine) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	return ids
}
