package repository_test

import (
	"context"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *repositorySuite) newOrder(userID string, products ...domain.Product) domain.Order {
	var lines []domain.CartLine
	for i, p := range products {
		lines = append(lines, domain.CartLine{ProductID: p.ID, Quantity: i + 1, Price: p.Price})
	}

	total, err := domain.Total(lines)
	suite.Require().NoError(err)

	return domain.Order{
		UserID: userID,
		Total:  total,
		Lines:  domain.OrderLinesFromCart(lines),
	}
}

func (suite *repositorySuite) TestOrderCreateAndGet() {
	t := suite.T()
	ctx := t.Context()

	a := suite.createProduct("10.00", 5)
	b := suite.createProduct("5.50", 5)

	created, err := suite.orders.Create(ctx, suite.newOrder("user-1", a, b))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, domain.OrderStatusPending, created.Status)

	got, err := suite.orders.Get(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, domain.OrderStatusPending, got.Status)
	assert.Equal(t, "21.00", got.Total.Amount.StringFixed(2))
	assert.Equal(t, "USD", got.Total.Currency.String())
	require.Len(t, got.Lines, 2)

	byProduct := map[uuid.UUID]domain.OrderLine{}
	for _, line := range got.Lines {
		byProduct[line.ProductID] = line
	}
	assert.Equal(t, 1, byProduct[a.ID].Quantity)
	assert.Equal(t, "10.00", byProduct[a.ID].LineTotal.Amount.StringFixed(2))
	assert.Equal(t, 2, byProduct[b.ID].Quantity)
	assert.Equal(t, "11.00", byProduct[b.ID].LineTotal.Amount.StringFixed(2))
}

func (suite *repositorySuite) TestOrderCreateValidation() {
	ctx := suite.T().Context()

	_, err := suite.orders.Create(ctx, domain.Order{UserID: "user-1", Total: usd("0")})
	suite.ErrorIs(err, domain.ErrEmptyCart)

	_, err = suite.orders.Create(ctx, domain.Order{Total: usd("0")})
	suite.EqualError(err, "userID is empty")
}

func (suite *repositorySuite) TestOrderListUpdateDeactivate() {
	t := suite.T()
	ctx := t.Context()

	product := suite.createProduct("1.00", 5)
	userID := gofakeit.UUID()

	first, err := suite.orders.Create(ctx, suite.newOrder(userID, product))
	require.NoError(t, err)
	second, err := suite.orders.Create(ctx, suite.newOrder(userID, product))
	require.NoError(t, err)
	_, err = suite.orders.Create(ctx, suite.newOrder(gofakeit.UUID(), product))
	require.NoError(t, err)

	list, err := suite.orders.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, suite.orders.UpdateStatus(ctx, first.ID, domain.OrderStatusPaid))
	got, err := suite.orders.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, got.Status)

	deleted, err := suite.orders.Deactivate(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = suite.orders.Get(ctx, second.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = suite.orders.UpdateStatus(ctx, second.ID, domain.OrderStatusPaid)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err = suite.orders.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)
}

func (suite *repositorySuite) TestRepositoriesWithTxShareTransaction() {
	t := suite.T()
	ctx := t.Context()

	product := suite.createProduct("3.00", 4)
	ownerID := gofakeit.UUID()
	cartID := suite.fillCart(ownerID, cartEntry{product.ID, 2})

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(context.Background()) }()

	carts := repository.NewCartWithTx(tx)
	products := repository.NewProductWithTx(tx)
	orders := repository.NewOrderWithTx(tx)

	order, err := orders.Create(ctx, suite.newOrder(ownerID, product))
	require.NoError(t, err)

	rows, err := products.DecrementStock(ctx, product.ID, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	_, err = carts.DeactivateItems(ctx, cartID)
	require.NoError(t, err)

	inside, err := products.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, inside.Stock)

	require.NoError(t, tx.Rollback(ctx))

	assert.Equal(t, 4, suite.stockOf(product.ID))
	assert.Equal(t, 1, suite.activeCartItems(cartID))
	_, err = suite.orders.Get(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
