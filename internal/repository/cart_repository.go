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

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

// GetActiveCartID locks the cart row until the surrounding transaction ends,
// so concurrent placements for one owner run one after another.
func (r *cartRepository) GetActiveCartID(ctx context.Context, ownerID string) (uuid.UUID, error) {
	if ownerID == "" {
		return uuid.Nil, fmt.Errorf("ownerID is empty")
	}

	cartID, err := r.q.LockActiveCart(ctx, ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, domain.ErrNoActiveCart
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("q.LockActiveCart: %w", err)
	}

	return cartID, nil
}

func (r *cartRepository) GetActiveLines(ctx context.Context, cartID uuid.UUID) ([]domain.CartLine, error) {
	rows, err := r.q.GetActiveCartLines(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("q.GetActiveCartLines: %w", err)
	}

	lines := make([]domain.CartLine, 0, len(rows))
	for _, row := range rows {
		line, err := mapCartLineRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapCartLineRowToDomain: %w", err)
		}

		lines = append(lines, line)
	}

	return lines, nil
}

func (r *cartRepository) DeactivateItems(ctx context.Context, cartID uuid.UUID) (int64, error) {
	rowsAffected, err := r.q.DeactivateCartItems(ctx, cartID)
	if err != nil {
		return 0, fmt.Errorf("q.DeactivateCartItems: %w", err)
	}

	return rowsAffected, nil
}

func (r *cartRepository) GetOrCreateCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Cart, error) {
		cartID, err := getOrCreateCartID(ctx, q, ownerID)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("getOrCreateCartID: %w", err)
		}

		rows, err := q.GetCartItems(ctx, cartID)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("q.GetCartItems: %w", err)
		}

		var items []domain.CartItem
		for _, row := range rows {
			item, err := mapCartItemRowToDomain(row)
			if err != nil {
				return domain.Cart{}, fmt.Errorf("mapCartItemRowToDomain: %w", err)
			}

			items = append(items, item)
		}

		return domain.Cart{
			ID:      cartID,
			OwnerID: ownerID,
			Items:   items,
		}, nil
	})
}

func (r *cartRepository) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("quantity must be positive")
	}
	if quantity > domain.MaxQuantity {
		return 0, fmt.Errorf("quantity %d out of range: %w", quantity, domain.ErrInvalidInput)
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (int, error) {
		product, err := q.GetProductForUpdate(ctx, productID)
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
		}
		if err != nil {
			return 0, fmt.Errorf("q.GetProductForUpdate: %w", err)
		}

		newQuantity, err := q.UpsertCartItem(ctx, db.UpsertCartItemParams{
			ID:        uuid.New(),
			CartID:    cartID,
			ProductID: productID,
			Quantity:  int32(quantity),
		})
		if err != nil {
			return 0, fmt.Errorf("q.UpsertCartItem: %w", err)
		}

		if newQuantity > product.Stock {
			return 0, &domain.InsufficientStockError{
				ProductID: productID,
				Available: int(product.Stock),
				Requested: int(newQuantity),
			}
		}

		return int(newQuantity), nil
	})
}

func (r *cartRepository) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) (bool, error) {
	rowsAffected, err := r.q.DeactivateCartItem(ctx, db.DeactivateCartItemParams{
		CartID:    cartID,
		ProductID: productID,
	})
	if err != nil {
		return false, fmt.Errorf("q.DeactivateCartItem: %w", err)
	}

	return rowsAffected > 0, nil
}

// getOrCreateCartID relies on the partial unique index on active carts: a
// concurrent creator makes our insert a no-op and the re-read sees its row.
func getOrCreateCartID(ctx context.Context, q *db.Queries, ownerID string) (uuid.UUID, error) {
	cartID, err := q.GetActiveCartID(ctx, ownerID)
	if err == nil {
		return cartID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("q.GetActiveCartID: %w", err)
	}

	if _, err := q.CreateActiveCart(ctx, db.CreateActiveCartParams{
		ID:     uuid.New(),
		UserID: ownerID,
	}); err != nil {
		return uuid.Nil, fmt.Errorf("q.CreateActiveCart: %w", err)
	}

	cartID, err = q.GetActiveCartID(ctx, ownerID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("q.GetActiveCartID: %w", err)
	}

	return cartID, nil
}
