package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcore/internal/db"
	"github.com/nikolayk812/shopcore/internal/port"
)

type unitOfWork struct {
	pool *pgxpool.Pool
}

func NewUnitOfWork(pool *pgxpool.Pool) port.UnitOfWork {
	return &unitOfWork{pool: pool}
}

func (u *unitOfWork) Do(ctx context.Context, fn func(s port.Stores) error) error {
	_, err := withTx(ctx, u.pool, nil, func(q *db.Queries) (struct{}, error) {
		return struct{}{}, fn(txStores{q: q})
	})
	return err
}

// txStores hands out repositories sharing the transaction's queries.
type txStores struct {
	q *db.Queries
}

func (s txStores) Carts() port.CartRepository {
	return &cartRepository{q: s.q}
}

func (s txStores) Products() port.ProductRepository {
	return &productRepository{q: s.q}
}

func (s txStores) Orders() port.OrderRepository {
	return &orderRepository{q: s.q}
}
