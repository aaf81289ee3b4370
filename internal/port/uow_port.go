package port

import (
	"context"

	"github.com/nikolayk812/shopcore/internal/domain"
)

// Stores groups repositories bound to one transaction.
type Stores interface {
	Carts() CartRepository
	Products() ProductRepository
	Orders() OrderRepository
}

// UnitOfWork runs fn inside a single transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(s Stores) error) error
}

// Invalidator receives cache invalidation signals. Publish must not block.
type Invalidator interface {
	Publish(inv domain.Invalidation)
}
