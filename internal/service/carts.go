package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/port"
)

// Carts manages the owner's active cart. None of its operations touch stock.
type Carts struct {
	repo port.CartRepository
	log  *slog.Logger
}

func NewCarts(log *slog.Logger, repo port.CartRepository) *Carts {
	return &Carts{repo: repo, log: log}
}

func (c *Carts) Get(ctx context.Context, userID string) (domain.Cart, error) {
	if userID == "" {
		return domain.Cart{}, fmt.Errorf("userID is empty: %w", domain.ErrInvalidInput)
	}

	cart, err := c.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("repo.GetOrCreateCart: %w", err)
	}

	return cart, nil
}

// AddItem increments the quantity of productID in the cart and returns the
// resulting quantity.
func (c *Carts) AddItem(ctx context.Context, userID string, productID uuid.UUID, quantity int) (int, error) {
	if quantity <= 0 || quantity > domain.MaxQuantity {
		return 0, fmt.Errorf("quantity %d out of range: %w", quantity, domain.ErrInvalidInput)
	}

	cart, err := c.Get(ctx, userID)
	if err != nil {
		return 0, err
	}

	newQuantity, err := c.repo.AddItem(ctx, cart.ID, productID, quantity)
	if err != nil {
		return 0, fmt.Errorf("repo.AddItem: %w", err)
	}

	c.log.DebugContext(ctx, "cart item added", "user_id", userID, "product_id", productID, "quantity", newQuantity)

	return newQuantity, nil
}

func (c *Carts) RemoveItem(ctx context.Context, userID string, productID uuid.UUID) error {
	cart, err := c.Get(ctx, userID)
	if err != nil {
		return err
	}

	removed, err := c.repo.RemoveItem(ctx, cart.ID, productID)
	if err != nil {
		return fmt.Errorf("repo.RemoveItem: %w", err)
	}
	if !removed {
		return fmt.Errorf("product[%s] in cart: %w", productID, domain.ErrNotFound)
	}

	return nil
}

func (c *Carts) Clear(ctx context.Context, userID string) error {
	cart, err := c.Get(ctx, userID)
	if err != nil {
		return err
	}

	if _, err := c.repo.DeactivateItems(ctx, cart.ID); err != nil {
		return fmt.Errorf("repo.DeactivateItems: %w", err)
	}

	return nil
}
