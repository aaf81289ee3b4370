package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcore/internal/db"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/port"
)

type orderRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		pool: nil,
	}
}

// Create inserts the order row and its frozen lines.
func (r *orderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.UserID == "" {
		return domain.Order{}, fmt.Errorf("userID is empty")
	}
	if len(order.Lines) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Order, error) {
		createdAt, err := q.CreateOrder(ctx, db.CreateOrderParams{
			ID:            order.ID,
			UserID:        order.UserID,
			Status:        string(order.Status),
			TotalAmount:   order.Total.Amount,
			TotalCurrency: order.Total.Currency.String(),
		})
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.CreateOrder: %w", err)
		}

		for _, line := range order.Lines {
			if err := q.CreateOrderItem(ctx, db.CreateOrderItemParams{
				OrderID:    order.ID,
				ProductID:  line.ProductID,
				UnitAmount: line.UnitPrice.Amount,
				Quantity:   int32(line.Quantity),
				LineAmount: line.LineTotal.Amount,
			}); err != nil {
				return domain.Order{}, fmt.Errorf("q.CreateOrderItem: %w", err)
			}
		}

		order.Active = true
		order.CreatedAt = createdAt

		return order, nil
	})
}

func (r *orderRepository) Get(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	return r.get(ctx, orderID, r.q.GetOrder)
}

func (r *orderRepository) GetForUpdate(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	return r.get(ctx, orderID, r.q.GetOrderForUpdate)
}

func (r *orderRepository) get(ctx context.Context, orderID uuid.UUID, query func(context.Context, uuid.UUID) (db.Order, error)) (domain.Order, error) {
	row, err := query(ctx, orderID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrder: %w", err)
	}

	items, err := r.q.GetOrderItems(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrderItems: %w", err)
	}

	return mapOrderToDomain(row, items)
}

// ListByUser returns order headers without lines.
func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is empty")
	}

	rows, err := r.q.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrdersByUser: %w", err)
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		order, err := mapOrderToDomain(row, nil)
		if err != nil {
			return nil, fmt.Errorf("mapOrderToDomain: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error {
	rowsAffected, err := r.q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{
		ID:     orderID,
		Status: string(status),
	})
	if err != nil {
		return fmt.Errorf("q.UpdateOrderStatus: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}

	return nil
}

func (r *orderRepository) Deactivate(ctx context.Context, orderID uuid.UUID) (bool, error) {
	rowsAffected, err := r.q.DeactivateOrder(ctx, orderID)
	if err != nil {
		return false, fmt.Errorf("q.DeactivateOrder: %w", err)
	}

	return rowsAffected > 0, nil
}
