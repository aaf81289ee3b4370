package repository_test

import (
	"errors"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *repositorySuite) TestProductCreateAndGet() {
	tests := []struct {
		name      string
		product   domain.Product
		wantError string
	}{
		{
			name:    "create product: ok",
			product: domain.Product{Name: gofakeit.ProductName(), Price: randomMoney(), Stock: gofakeit.IntRange(0, 100)},
		},
		{
			name:    "create product with zero price: ok",
			product: domain.Product{Name: gofakeit.ProductName(), Price: usd("0"), Stock: 1},
		},
		{
			name:      "create product with empty name: error",
			product:   domain.Product{Name: " ", Price: randomMoney()},
			wantError: "name is empty",
		},
		{
			name:      "create product with negative stock: error",
			product:   domain.Product{Name: gofakeit.ProductName(), Price: randomMoney(), Stock: -1},
			wantError: "stock is negative",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			created, err := suite.products.Create(ctx, tt.product)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, created.ID)

			got, err := suite.products.Get(ctx, created.ID)
			require.NoError(t, err)

			expected := tt.product
			expected.ID = created.ID
			expected.Active = true
			assertProduct(t, expected, got)
		})
	}
}

func (suite *repositorySuite) TestProductGetUnknown() {
	_, err := suite.products.Get(suite.T().Context(), uuid.New())
	suite.ErrorIs(err, domain.ErrNotFound)
}

func (suite *repositorySuite) TestProductListAndDeactivate() {
	t := suite.T()
	ctx := t.Context()

	kept := suite.createProduct("1.00", 1)
	removed := suite.createProduct("2.00", 2)

	deleted, err := suite.products.Deactivate(ctx, removed.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = suite.products.Deactivate(ctx, removed.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	list, err := suite.products.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, kept.ID, list[0].ID)

	_, err = suite.products.Get(ctx, removed.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *repositorySuite) TestProductDecrementStockIsGuarded() {
	t := suite.T()
	ctx := t.Context()

	product := suite.createProduct("5.00", 3)

	rows, err := suite.products.DecrementStock(ctx, product.ID, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	rows, err = suite.products.DecrementStock(ctx, product.ID, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)

	assert.Equal(t, 1, suite.stockOf(product.ID))

	_, err = suite.products.DecrementStock(ctx, product.ID, 0)
	require.EqualError(t, err, "amount must be positive")
}

func (suite *repositorySuite) TestProductAdjustStock() {
	t := suite.T()
	ctx := t.Context()

	product := suite.createProduct("5.00", 3)

	stock, err := suite.products.AdjustStock(ctx, product.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 10, stock)

	stock, err = suite.products.AdjustStock(ctx, product.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, stock)

	_, err = suite.products.AdjustStock(ctx, product.ID, -1)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 0, stockErr.Available)
	assert.Equal(t, 1, stockErr.Requested)

	_, err = suite.products.AdjustStock(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *repositorySuite) TestProductQuantitiesOutOfRange() {
	t := suite.T()
	ctx := t.Context()

	product := suite.createProduct("5.00", 3)

	_, err := suite.products.AdjustStock(ctx, product.ID, 4294967295)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = suite.products.AdjustStock(ctx, product.ID, domain.MaxQuantity)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = suite.products.DecrementStock(ctx, product.ID, 4294967297)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = suite.products.Create(ctx, domain.Product{Name: "crate", Price: usd("1.00"), Stock: domain.MaxQuantity + 1})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	cartID := suite.fillCart(gofakeit.UUID())
	_, err = suite.carts.AddItem(ctx, cartID, product.ID, 4294967297)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 3, suite.stockOf(product.ID))
	assert.Zero(t, suite.activeCartItems(cartID))
}
