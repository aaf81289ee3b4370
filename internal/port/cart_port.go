package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcore/internal/domain"
)

type CartRepository interface {
	GetActiveCartID(ctx context.Context, ownerID string) (uuid.UUID, error)
	GetActiveLines(ctx context.Context, cartID uuid.UUID) ([]domain.CartLine, error)
	DeactivateItems(ctx context.Context, cartID uuid.UUID) (int64, error)

	GetOrCreateCart(ctx context.Context, ownerID string) (domain.Cart, error)
	AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (int, error)
	RemoveItem(ctx context.Context, cartID, productID uuid.UUID) (bool, error)
}
