package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcore/internal/domain"
)

type ProductRepository interface {
	GetForUpdate(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	// DecrementStock applies "stock = stock - amount where stock >= amount"
	// as one statement and reports the affected row count.
	DecrementStock(ctx context.Context, productID uuid.UUID, amount int) (int64, error)

	Create(ctx context.Context, product domain.Product) (domain.Product, error)
	Get(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (int, error)
	Deactivate(ctx context.Context, productID uuid.UUID) (bool, error)
}
