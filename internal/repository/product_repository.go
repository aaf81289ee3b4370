package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcore/internal/db"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/port"
)

type productRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{
		q:    db.New(tx),
		pool: nil,
	}
}

func (r *productRepository) GetForUpdate(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	row, err := r.q.GetProductForUpdate(ctx, productID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.GetProductForUpdate: %w", err)
	}

	return mapProductToDomain(row)
}

func (r *productRepository) DecrementStock(ctx context.Context, productID uuid.UUID, amount int) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}
	if amount > domain.MaxQuantity {
		return 0, fmt.Errorf("amount %d out of range: %w", amount, domain.ErrInvalidInput)
	}

	rowsAffected, err := r.q.DecrementStock(ctx, db.DecrementStockParams{
		Quantity: int32(amount),
		ID:       productID,
	})
	if err != nil {
		return 0, fmt.Errorf("q.DecrementStock: %w", err)
	}

	return rowsAffected, nil
}

func (r *productRepository) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	if strings.TrimSpace(product.Name) == "" {
		return domain.Product{}, fmt.Errorf("name is empty")
	}
	if product.Price.Amount.IsNegative() {
		return domain.Product{}, fmt.Errorf("price is negative")
	}
	if product.Stock < 0 {
		return domain.Product{}, fmt.Errorf("stock is negative")
	}
	if product.Stock > domain.MaxQuantity {
		return domain.Product{}, fmt.Errorf("stock %d out of range: %w", product.Stock, domain.ErrInvalidInput)
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	createdAt, err := r.q.CreateProduct(ctx, db.CreateProductParams{
		ID:            product.ID,
		Name:          product.Name,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
		Stock:         int32(product.Stock),
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.CreateProduct: %w", err)
	}

	product.Active = true
	product.CreatedAt = createdAt

	return product, nil
}

func (r *productRepository) Get(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	row, err := r.q.GetProduct(ctx, productID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", err)
	}

	return mapProductToDomain(row)
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListProducts: %w", err)
	}

	return mapProductsToDomain(rows)
}

// AdjustStock adds delta (possibly negative) to the product's stock under a
// row lock and returns the new level.
func (r *productRepository) AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (int, error) {
	if delta > domain.MaxQuantity || delta < -domain.MaxQuantity {
		return 0, fmt.Errorf("delta %d out of range: %w", delta, domain.ErrInvalidInput)
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (int, error) {
		row, err := q.GetProductForUpdate(ctx, productID)
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
		}
		if err != nil {
			return 0, fmt.Errorf("q.GetProductForUpdate: %w", err)
		}

		if int(row.Stock)+delta > domain.MaxQuantity {
			return 0, fmt.Errorf("stock %d%+d out of range: %w", row.Stock, delta, domain.ErrInvalidInput)
		}
		if int(row.Stock)+delta < 0 {
			return 0, &domain.InsufficientStockError{
				ProductID: productID,
				Available: int(row.Stock),
				Requested: -delta,
			}
		}

		stock, err := q.AdjustStock(ctx, db.AdjustStockParams{
			Delta: int32(delta),
			ID:    productID,
		})
		if err != nil {
			return 0, fmt.Errorf("q.AdjustStock: %w", err)
		}

		return int(stock), nil
	})
}

func (r *productRepository) Deactivate(ctx context.Context, productID uuid.UUID) (bool, error) {
	rowsAffected, err := r.q.DeactivateProduct(ctx, productID)
	if err != nil {
		return false, fmt.Errorf("q.DeactivateProduct: %w", err)
	}

	return rowsAffected > 0, nil
}
