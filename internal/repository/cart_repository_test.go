package repository_test

import (
	"errors"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *repositorySuite) TestGetOrCreateCart() {
	tests := []struct {
		name      string
		ownerID   string
		wantError string
	}{
		{
			name:    "new owner gets an empty cart: ok",
			ownerID: gofakeit.UUID(),
		},
		{
			name:      "empty owner ID: error",
			ownerID:   "",
			wantError: "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			cart, err := suite.carts.GetOrCreateCart(ctx, tt.ownerID)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.ownerID, cart.OwnerID)
			assert.Empty(t, cart.Items)

			again, err := suite.carts.GetOrCreateCart(ctx, tt.ownerID)
			require.NoError(t, err)
			assert.Equal(t, cart.ID, again.ID)

			activeID, err := suite.carts.GetActiveCartID(ctx, tt.ownerID)
			require.NoError(t, err)
			assert.Equal(t, cart.ID, activeID)
		})
	}
}

func (suite *repositorySuite) TestGetActiveCartIDWithoutCart() {
	_, err := suite.carts.GetActiveCartID(suite.T().Context(), gofakeit.UUID())
	suite.ErrorIs(err, domain.ErrNoActiveCart)
}

func (suite *repositorySuite) TestAddItem() {
	t := suite.T()
	ctx := t.Context()

	product := suite.createProduct("4.20", 5)
	ownerID := gofakeit.UUID()
	cartID := suite.fillCart(ownerID)

	quantity, err := suite.carts.AddItem(ctx, cartID, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, quantity)

	quantity, err = suite.carts.AddItem(ctx, cartID, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, quantity, "same product increments the existing line")

	_, err = suite.carts.AddItem(ctx, cartID, product.ID, 1)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, 6, stockErr.Requested)

	_, err = suite.carts.AddItem(ctx, cartID, uuid.New(), 1)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = suite.carts.AddItem(ctx, cartID, product.ID, 0)
	require.EqualError(t, err, "quantity must be positive")

	cart, err := suite.carts.GetOrCreateCart(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	item := cart.Items[0]
	assert.Equal(t, product.ID, item.ProductID)
	assert.Equal(t, product.Name, item.ProductName)
	assert.Equal(t, 5, item.Quantity)
	assert.True(t, product.Price.Amount.Equal(item.Price.Amount))
	assert.False(t, item.CreatedAt.IsZero())
}

func (suite *repositorySuite) TestRemoveItem() {
	t := suite.T()
	ctx := t.Context()

	a := suite.createProduct("1.00", 10)
	b := suite.createProduct("2.00", 10)
	cartID := suite.fillCart(gofakeit.UUID(), cartEntry{a.ID, 1}, cartEntry{b.ID, 2})

	removed, err := suite.carts.RemoveItem(ctx, cartID, a.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = suite.carts.RemoveItem(ctx, cartID, a.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	lines, err := suite.carts.GetActiveLines(ctx, cartID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, b.ID, lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 10, lines[0].Stock)
	assert.True(t, lines[0].ProductActive)

	// a removed line may be added again as a fresh row
	quantity, err := suite.carts.AddItem(ctx, cartID, a.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, quantity)
}

func (suite *repositorySuite) TestDeactivateItems() {
	t := suite.T()
	ctx := t.Context()

	a := suite.createProduct("1.00", 10)
	b := suite.createProduct("2.00", 10)
	cartID := suite.fillCart(gofakeit.UUID(), cartEntry{a.ID, 1}, cartEntry{b.ID, 1})

	n, err := suite.carts.DeactivateItems(ctx, cartID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.Zero(t, suite.activeCartItems(cartID))
}
