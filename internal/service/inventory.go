package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Inventory covers product writes and manual stock adjustments. Every
// successful write emits an invalidation.
type Inventory struct {
	repo        port.ProductRepository
	invalidator port.Invalidator
	currency    currency.Unit
	log         *slog.Logger
}

func NewInventory(log *slog.Logger, repo port.ProductRepository, invalidator port.Invalidator, storeCurrency currency.Unit) *Inventory {
	return &Inventory{
		repo:        repo,
		invalidator: invalidator,
		currency:    storeCurrency,
		log:         log,
	}
}

func (i *Inventory) CreateProduct(ctx context.Context, name string, price decimal.Decimal, stock int) (domain.Product, error) {
	switch {
	case strings.TrimSpace(name) == "":
		return domain.Product{}, fmt.Errorf("name is empty: %w", domain.ErrInvalidInput)
	case price.IsNegative():
		return domain.Product{}, fmt.Errorf("price is negative: %w", domain.ErrInvalidInput)
	case stock < 0:
		return domain.Product{}, fmt.Errorf("stock is negative: %w", domain.ErrInvalidInput)
	case stock > domain.MaxQuantity:
		return domain.Product{}, fmt.Errorf("stock %d out of range: %w", stock, domain.ErrInvalidInput)
	}

	product, err := i.repo.Create(ctx, domain.Product{
		Name:  strings.TrimSpace(name),
		Price: domain.NewMoney(price, i.currency),
		Stock: stock,
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("repo.Create: %w", err)
	}

	i.invalidator.Publish(domain.InvalidateProducts(product.ID))
	i.log.InfoContext(ctx, "product created", "product_id", product.ID, "stock", product.Stock)

	return product, nil
}

func (i *Inventory) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	deleted, err := i.repo.Deactivate(ctx, productID)
	if err != nil {
		return fmt.Errorf("repo.Deactivate: %w", err)
	}
	if !deleted {
		return fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}

	i.invalidator.Publish(domain.InvalidateProducts(productID))
	i.log.InfoContext(ctx, "product deleted", "product_id", productID)

	return nil
}

// AdjustStock applies a manual inventory correction. The resulting stock may
// not go below zero.
func (i *Inventory) AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (int, error) {
	if delta == 0 {
		return 0, fmt.Errorf("delta is zero: %w", domain.ErrInvalidInput)
	}
	if delta > domain.MaxQuantity || delta < -domain.MaxQuantity {
		return 0, fmt.Errorf("delta %d out of range: %w", delta, domain.ErrInvalidInput)
	}

	stock, err := i.repo.AdjustStock(ctx, productID, delta)
	if err != nil {
		return 0, fmt.Errorf("repo.AdjustStock: %w", err)
	}

	i.invalidator.Publish(domain.InvalidateProducts(productID))
	i.log.InfoContext(ctx, "stock adjusted", "product_id", productID, "delta", delta, "stock", stock)

	return stock, nil
}
