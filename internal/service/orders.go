package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/port"
)

// Orders serves reads and status changes of placed orders. Totals and lines
// are never modified after placement.
type Orders struct {
	repo port.OrderRepository
	uow  port.UnitOfWork
	log  *slog.Logger
}

func NewOrders(log *slog.Logger, repo port.OrderRepository, uow port.UnitOfWork) *Orders {
	return &Orders{repo: repo, uow: uow, log: log}
}

func (o *Orders) Get(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	order, err := o.repo.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("repo.Get: %w", err)
	}

	return order, nil
}

func (o *Orders) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is empty: %w", domain.ErrInvalidInput)
	}

	orders, err := o.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("repo.ListByUser: %w", err)
	}

	return orders, nil
}

func (o *Orders) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error {
	err := o.uow.Do(ctx, func(s port.Stores) error {
		order, err := s.Orders().GetForUpdate(ctx, orderID)
		if err != nil {
			return fmt.Errorf("orders.GetForUpdate: %w", err)
		}

		if !order.Status.CanTransitionTo(status) {
			return fmt.Errorf("%s -> %s: %w", order.Status, status, domain.ErrInvalidTransition)
		}

		if err := s.Orders().UpdateStatus(ctx, orderID, status); err != nil {
			return fmt.Errorf("orders.UpdateStatus: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	o.log.InfoContext(ctx, "order status updated", "order_id", orderID, "status", status)

	return nil
}

func (o *Orders) Delete(ctx context.Context, orderID uuid.UUID) error {
	deleted, err := o.repo.Deactivate(ctx, orderID)
	if err != nil {
		return fmt.Errorf("repo.Deactivate: %w", err)
	}
	if !deleted {
		return fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}

	o.log.InfoContext(ctx, "order deleted", "order_id", orderID)

	return nil
}
