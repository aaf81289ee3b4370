package service_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/port"
	"github.com/stretchr/testify/mock"
)

var errNotImplemented = errors.New("not implemented")

type cartItem struct {
	productID uuid.UUID
	quantity  int
}

// memState is the whole "database" of memUnitOfWork.
type memState struct {
	carts    map[string]uuid.UUID
	items    map[uuid.UUID][]cartItem
	products map[uuid.UUID]domain.Product
	orders   map[uuid.UUID]domain.Order
}

func newMemState() *memState {
	return &memState{
		carts:    map[string]uuid.UUID{},
		items:    map[uuid.UUID][]cartItem{},
		products: map[uuid.UUID]domain.Product{},
		orders:   map[uuid.UUID]domain.Order{},
	}
}

func (s *memState) clone() *memState {
	items := make(map[uuid.UUID][]cartItem, len(s.items))
	for k, v := range s.items {
		items[k] = slices.Clone(v)
	}

	return &memState{
		carts:    maps.Clone(s.carts),
		items:    items,
		products: maps.Clone(s.products),
		orders:   maps.Clone(s.orders),
	}
}

// memUnitOfWork runs fn against a copy of the state and swaps it in only
// when fn succeeds.
type memUnitOfWork struct {
	mu    sync.Mutex
	state *memState

	failDecrementOnCall  int
	raceLostProduct      uuid.UUID
	cartClearedElsewhere bool
}

func newMemUnitOfWork() *memUnitOfWork {
	return &memUnitOfWork{state: newMemState()}
}

func (u *memUnitOfWork) Do(ctx context.Context, fn func(s port.Stores) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := u.state.clone()
	if err := fn(&memStores{uow: u, state: work}); err != nil {
		return err
	}

	u.state = work
	return nil
}

func (u *memUnitOfWork) addProduct(price domain.Money, stock int) uuid.UUID {
	id := uuid.New()
	u.state.products[id] = domain.Product{ID: id, Name: "p-" + id.String()[:8], Price: price, Stock: stock, Active: true}
	return id
}

func (u *memUnitOfWork) addCart(userID string, items ...cartItem) uuid.UUID {
	id := uuid.New()
	u.state.carts[userID] = id
	u.state.items[id] = items
	return id
}

func (u *memUnitOfWork) stock(productID uuid.UUID) int {
	return u.state.products[productID].Stock
}

type memStores struct {
	uow   *memUnitOfWork
	state *memState

	decrementCalls int
}

func (s *memStores) Carts() port.CartRepository       { return memCarts{s} }
func (s *memStores) Products() port.ProductRepository { return memProducts{s} }
func (s *memStores) Orders() port.OrderRepository     { return memOrders{s} }

type memCarts struct{ s *memStores }

func (c memCarts) GetActiveCartID(_ context.Context, ownerID string) (uuid.UUID, error) {
	id, ok := c.s.state.carts[ownerID]
	if !ok {
		return uuid.Nil, domain.ErrNoActiveCart
	}
	return id, nil
}

func (c memCarts) GetActiveLines(_ context.Context, cartID uuid.UUID) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	for _, item := range c.s.state.items[cartID] {
		p := c.s.state.products[item.productID]
		lines = append(lines, domain.CartLine{
			ProductID:     item.productID,
			Quantity:      item.quantity,
			Price:         p.Price,
			Stock:         p.Stock,
			ProductActive: p.Active,
		})
	}
	return lines, nil
}

func (c memCarts) DeactivateItems(_ context.Context, cartID uuid.UUID) (int64, error) {
	n := len(c.s.state.items[cartID])
	c.s.state.items[cartID] = nil
	if c.s.uow.cartClearedElsewhere {
		return 0, nil
	}
	return int64(n), nil
}

func (c memCarts) GetOrCreateCart(context.Context, string) (domain.Cart, error) {
	return domain.Cart{}, errNotImplemented
}

func (c memCarts) AddItem(context.Context, uuid.UUID, uuid.UUID, int) (int, error) {
	return 0, errNotImplemented
}

func (c memCarts) RemoveItem(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, errNotImplemented
}

type memProducts struct{ s *memStores }

func (p memProducts) GetForUpdate(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	product, ok := p.s.state.products[productID]
	if !ok || !product.Active {
		return domain.Product{}, domain.ErrNotFound
	}
	return product, nil
}

func (p memProducts) DecrementStock(_ context.Context, productID uuid.UUID, amount int) (int64, error) {
	p.s.decrementCalls++
	if p.s.uow.failDecrementOnCall == p.s.decrementCalls {
		return 0, errors.New("connection reset by peer")
	}
	if p.s.uow.raceLostProduct == productID {
		return 0, nil
	}

	product := p.s.state.products[productID]
	if !product.Active || product.Stock < amount {
		return 0, nil
	}
	product.Stock -= amount
	p.s.state.products[productID] = product
	return 1, nil
}

func (p memProducts) Create(context.Context, domain.Product) (domain.Product, error) {
	return domain.Product{}, errNotImplemented
}

func (p memProducts) Get(context.Context, uuid.UUID) (domain.Product, error) {
	return domain.Product{}, errNotImplemented
}

func (p memProducts) List(context.Context) ([]domain.Product, error) {
	return nil, errNotImplemented
}

func (p memProducts) AdjustStock(context.Context, uuid.UUID, int) (int, error) {
	return 0, errNotImplemented
}

func (p memProducts) Deactivate(context.Context, uuid.UUID) (bool, error) {
	return false, errNotImplemented
}

type memOrders struct{ s *memStores }

func (o memOrders) Create(_ context.Context, order domain.Order) (domain.Order, error) {
	order.ID = uuid.New()
	order.Active = true
	o.s.state.orders[order.ID] = order
	return order, nil
}

func (o memOrders) Get(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	order, ok := o.s.state.orders[orderID]
	if !ok || !order.Active {
		return domain.Order{}, domain.ErrNotFound
	}
	return order, nil
}

func (o memOrders) GetForUpdate(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	return o.Get(ctx, orderID)
}

func (o memOrders) ListByUser(context.Context, string) ([]domain.Order, error) {
	return nil, errNotImplemented
}

func (o memOrders) UpdateStatus(_ context.Context, orderID uuid.UUID, status domain.OrderStatus) error {
	order, ok := o.s.state.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	order.Status = status
	o.s.state.orders[orderID] = order
	return nil
}

func (o memOrders) Deactivate(context.Context, uuid.UUID) (bool, error) {
	return false, errNotImplemented
}

type mockInvalidator struct {
	mock.Mock
}

func (m *mockInvalidator) Publish(inv domain.Invalidation) {
	m.Called(inv)
}
