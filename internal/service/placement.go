package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/port"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/nikolayk812/shopcore/internal/service"

// Placement converts a user's active cart into an order in one transaction.
type Placement struct {
	uow         port.UnitOfWork
	invalidator port.Invalidator
	log         *slog.Logger
	tracer      trace.Tracer

	placed metric.Int64Counter
	failed metric.Int64Counter
}

func NewPlacement(log *slog.Logger, uow port.UnitOfWork, invalidator port.Invalidator) (*Placement, error) {
	meter := otel.Meter(instrumentationName)

	placed, err := meter.Int64Counter("orders.placed",
		metric.WithDescription("Orders committed by the placement transaction"))
	if err != nil {
		return nil, fmt.Errorf("meter.Int64Counter: %w", err)
	}

	failed, err := meter.Int64Counter("orders.placement_failed",
		metric.WithDescription("Placement attempts rolled back, by error kind"))
	if err != nil {
		return nil, fmt.Errorf("meter.Int64Counter: %w", err)
	}

	return &Placement{
		uow:         uow,
		invalidator: invalidator,
		log:         log,
		tracer:      otel.Tracer(instrumentationName),
		placed:      placed,
		failed:      failed,
	}, nil
}

// PlaceOrder is all-or-nothing: either the order row, every stock decrement
// and the cart clear are committed together, or nothing is. Errors are never
// retried here; the caller resubmits with fresh cart and stock data.
func (p *Placement) PlaceOrder(ctx context.Context, userID string) (domain.PlacedOrder, error) {
	ctx, span := p.tracer.Start(ctx, "PlaceOrder", trace.WithAttributes(attribute.String("user_id", userID)))
	defer span.End()

	if strings.TrimSpace(userID) == "" {
		return domain.PlacedOrder{}, p.fail(ctx, span, fmt.Errorf("userID is empty: %w", domain.ErrInvalidInput))
	}

	var (
		placed   domain.PlacedOrder
		affected []uuid.UUID
	)

	err := p.uow.Do(ctx, func(s port.Stores) error {
		cartID, err := s.Carts().GetActiveCartID(ctx, userID)
		if err != nil {
			return fmt.Errorf("carts.GetActiveCartID: %w", err)
		}

		lines, err := s.Carts().GetActiveLines(ctx, cartID)
		if err != nil {
			return fmt.Errorf("carts.GetActiveLines: %w", err)
		}
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}
		loaded := int64(len(lines))

		lines, err = domain.ConsolidateLines(lines)
		if err != nil {
			return fmt.Errorf("domain.ConsolidateLines: %w", err)
		}

		if err := domain.CheckStock(lines); err != nil {
			return err
		}

		total, err := domain.Total(lines)
		if err != nil {
			return fmt.Errorf("domain.Total: %w", err)
		}

		order, err := s.Orders().Create(ctx, domain.Order{
			UserID: userID,
			Status: domain.OrderStatusPending,
			Total:  total,
			Lines:  domain.OrderLinesFromCart(lines),
		})
		if err != nil {
			return fmt.Errorf("orders.Create: %w", err)
		}

		for _, line := range lines {
			rowsAffected, err := s.Products().DecrementStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return fmt.Errorf("products.DecrementStock: %w", err)
			}
			if rowsAffected == 0 {
				return &domain.StockRaceLostError{ProductID: line.ProductID}
			}
		}

		cleared, err := s.Carts().DeactivateItems(ctx, cartID)
		if err != nil {
			return fmt.Errorf("carts.DeactivateItems: %w", err)
		}
		if cleared != loaded {
			return fmt.Errorf("cart %s cleared %d of %d lines: %w", cartID, cleared, loaded, domain.ErrEmptyCart)
		}

		placed = domain.PlacedOrder{OrderID: order.ID, Total: total}
		affected = domain.ProductIDs(lines)

		return nil
	})
	if err != nil {
		return domain.PlacedOrder{}, p.fail(ctx, span, err)
	}

	// outside the transaction: a lost signal only leaves the cache stale
	p.invalidator.Publish(domain.InvalidateProducts(affected...))

	p.placed.Add(ctx, 1)
	span.SetAttributes(attribute.String("order_id", placed.OrderID.String()))
	p.log.InfoContext(ctx, "order placed",
		"order_id", placed.OrderID,
		"user_id", userID,
		"total", placed.Total.String(),
		"products", len(affected))

	return placed, nil
}

func (p *Placement) fail(ctx context.Context, span trace.Span, err error) error {
	kind := domain.KindOf(err)

	p.failed.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
	span.RecordError(err)
	span.SetStatus(codes.Error, kind)

	if kind == domain.KindPersistenceFailure {
		p.log.ErrorContext(ctx, "order placement failed", "kind", kind, "err", err)
	} else {
		p.log.InfoContext(ctx, "order placement rejected", "kind", kind, "err", err)
	}

	return err
}
