package httpapi

import (
	"time"

	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/shopspring/decimal"
)

// placeOrderRequest accepts and ignores a client total; the server computes
// its own.
type placeOrderRequest struct {
	UserID string           `json:"userId" binding:"required"`
	Total  *decimal.Decimal `json:"total,omitempty"`
}

type placeOrderResponse struct {
	OrderID  string `json:"orderId"`
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=2147483647"`
}

type createProductRequest struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock" binding:"min=0,max=2147483647"`
}

type adjustStockRequest struct {
	Delta int `json:"delta" binding:"required,min=-2147483647,max=2147483647"`
}

type moneyResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func toMoneyResponse(m domain.Money) moneyResponse {
	return moneyResponse{Amount: m.Amount.StringFixed(2), Currency: m.Currency.String()}
}

type productResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Price     moneyResponse `json:"price"`
	Stock     int           `json:"stock"`
	CreatedAt time.Time     `json:"createdAt"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Price:     toMoneyResponse(p.Price),
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
	}
}

type cartItemResponse struct {
	ProductID   string        `json:"productId"`
	ProductName string        `json:"productName"`
	Quantity    int           `json:"quantity"`
	Price       moneyResponse `json:"price"`
}

type cartResponse struct {
	ID     string             `json:"id"`
	UserID string             `json:"userId"`
	Items  []cartItemResponse `json:"items"`
}

func toCartResponse(c domain.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, cartItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       toMoneyResponse(item.Price),
		})
	}

	return cartResponse{ID: c.ID.String(), UserID: c.OwnerID, Items: items}
}

type orderLineResponse struct {
	ProductID string        `json:"productId"`
	UnitPrice moneyResponse `json:"unitPrice"`
	Quantity  int           `json:"quantity"`
	LineTotal moneyResponse `json:"lineTotal"`
}

type orderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	Status    string              `json:"status"`
	Total     moneyResponse       `json:"total"`
	Lines     []orderLineResponse `json:"lines"`
	CreatedAt time.Time           `json:"createdAt"`
}

func toOrderResponse(o domain.Order) orderResponse {
	lines := make([]orderLineResponse, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, orderLineResponse{
			ProductID: line.ProductID.String(),
			UnitPrice: toMoneyResponse(line.UnitPrice),
			Quantity:  line.Quantity,
			LineTotal: toMoneyResponse(line.LineTotal),
		})
	}

	return orderResponse{
		ID:        o.ID.String(),
		UserID:    o.UserID,
		Status:    string(o.Status),
		Total:     toMoneyResponse(o.Total),
		Lines:     lines,
		CreatedAt: o.CreatedAt,
	}
}

type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
