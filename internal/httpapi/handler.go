package httpapi

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, userID string) (domain.PlacedOrder, error)
}

type OrderService interface {
	Get(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error
	Delete(ctx context.Context, orderID uuid.UUID) error
}

type CartService interface {
	Get(ctx context.Context, userID string) (domain.Cart, error)
	AddItem(ctx context.Context, userID string, productID uuid.UUID, quantity int) (int, error)
	RemoveItem(ctx context.Context, userID string, productID uuid.UUID) error
	Clear(ctx context.Context, userID string) error
}

type InventoryService interface {
	CreateProduct(ctx context.Context, name string, price decimal.Decimal, stock int) (domain.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (int, error)
}

type ProductCatalog interface {
	Get(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}

type Handler struct {
	placer    OrderPlacer
	orders    OrderService
	carts     CartService
	inventory InventoryService
	catalog   ProductCatalog

	placementTimeout time.Duration
	exposeErrors     bool
	log              *slog.Logger
}

type Options struct {
	PlacementTimeout time.Duration
	// ExposeErrors includes internal error detail in 500 responses.
	ExposeErrors bool
}

func NewHandler(
	log *slog.Logger,
	placer OrderPlacer,
	orders OrderService,
	carts CartService,
	inventory InventoryService,
	catalog ProductCatalog,
	opts Options,
) *Handler {
	return &Handler{
		placer:           placer,
		orders:           orders,
		carts:            carts,
		inventory:        inventory,
		catalog:          catalog,
		placementTimeout: opts.PlacementTimeout,
		exposeErrors:     opts.ExposeErrors,
		log:              log,
	}
}

// Router builds the gin engine with every route registered.
func (h *Handler) Router(serviceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))

	r.GET("/health", h.Health)

	api := r.Group("/api")

	api.POST("/orders", h.PlaceOrder)
	api.POST("/pedidos", h.PlaceOrder)
	api.GET("/orders/:id", h.GetOrder)
	api.PATCH("/orders/:id", h.UpdateOrderStatus)
	api.DELETE("/orders/:id", h.DeleteOrder)
	api.GET("/users/:userId/orders", h.ListUserOrders)

	api.GET("/carts/:userId", h.GetCart)
	api.DELETE("/carts/:userId", h.ClearCart)
	api.POST("/carts/:userId/items", h.AddCartItem)
	api.DELETE("/carts/:userId/items/:productId", h.RemoveCartItem)

	api.GET("/products", h.ListProducts)
	api.POST("/products", h.CreateProduct)
	api.GET("/products/:id", h.GetProduct)
	api.DELETE("/products/:id", h.DeleteProduct)
	api.POST("/inventory/:productId/adjust", h.AdjustStock)

	return r
}
