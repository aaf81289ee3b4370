package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcore/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	Get(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	GetForUpdate(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error
	Deactivate(ctx context.Context, orderID uuid.UUID) (bool, error)
}
