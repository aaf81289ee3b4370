package repository

import (
	"fmt"
	"strings"

	"github.com/nikolayk812/shopcore/internal/db"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

func toMoney(amount decimal.Decimal, code string) (domain.Money, error) {
	// CHAR(3) columns come back padded when shorter codes slip in
	parsedCurrency, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}

	return domain.Money{Amount: amount, Currency: parsedCurrency}, nil
}

func mapProductToDomain(row db.Product) (domain.Product, error) {
	price, err := toMoney(row.PriceAmount, row.PriceCurrency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("toMoney: %w", err)
	}

	return domain.Product{
		ID:        row.ID,
		Name:      row.Name,
		Price:     price,
		Stock:     int(row.Stock),
		Active:    row.Active,
		CreatedAt: row.CreatedAt,
	}, nil
}

func mapProductsToDomain(rows []db.Product) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(rows))

	for _, row := range rows {
		product, err := mapProductToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapProductToDomain: %w", err)
		}

		products = append(products, product)
	}

	return products, nil
}

func mapCartItemRowToDomain(row db.GetCartItemsRow) (domain.CartItem, error) {
	price, err := toMoney(row.PriceAmount, row.PriceCurrency)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("toMoney: %w", err)
	}

	return domain.CartItem{
		ProductID:   row.ProductID,
		ProductName: row.Name,
		Quantity:    int(row.Quantity),
		Price:       price,
		CreatedAt:   row.CreatedAt,
	}, nil
}

func mapCartLineRowToDomain(row db.GetActiveCartLinesRow) (domain.CartLine, error) {
	price, err := toMoney(row.PriceAmount, row.PriceCurrency)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("toMoney: %w", err)
	}

	return domain.CartLine{
		ProductID:     row.ProductID,
		Quantity:      int(row.Quantity),
		Price:         price,
		Stock:         int(row.Stock),
		ProductActive: row.ProductActive,
	}, nil
}

func mapOrderToDomain(row db.Order, itemRows []db.OrderItem) (domain.Order, error) {
	total, err := toMoney(row.TotalAmount, row.TotalCurrency)
	if err != nil {
		return domain.Order{}, fmt.Errorf("toMoney: %w", err)
	}

	lines := make([]domain.OrderLine, 0, len(itemRows))
	for _, item := range itemRows {
		lines = append(lines, domain.OrderLine{
			ProductID: item.ProductID,
			UnitPrice: domain.Money{Amount: item.UnitAmount, Currency: total.Currency},
			Quantity:  int(item.Quantity),
			LineTotal: domain.Money{Amount: item.LineAmount, Currency: total.Currency},
		})
	}

	return domain.Order{
		ID:        row.ID,
		UserID:    row.UserID,
		Status:    domain.OrderStatus(row.Status),
		Total:     total,
		Lines:     lines,
		Active:    row.Active,
		CreatedAt: row.CreatedAt,
	}, nil
}
