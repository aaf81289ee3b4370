package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// MaxQuantity is the largest stock level, quantity or stock delta the
// INTEGER columns can hold.
const MaxQuantity = math.MaxInt32

type Product struct {
	ID     uuid.UUID
	Name   string
	Price  Money
	Stock  int
	Active bool

	CreatedAt time.Time
}
