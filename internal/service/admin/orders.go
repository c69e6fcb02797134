package admin

import (
	"context"

	"boomstore/internal/domain"
)

// ListOrders returns all orders with their customer summary, newest
// first.
func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// GetOrder returns one order with its line items.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// UpdateOrderStatus transitions an order to the given status.
func (s *Service) UpdateOrderStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.orders.UpdateStatus(ctx, id, status)
}
