package repository

import (
	"context"

	"github.com/Pavel26ru/BruCup/internal/domain"
)

type OrderRepository interface {
	// Save persists a new order and assigns its id.
	Save(ctx context.Context, order *domain.Order) error
	// FindByID returns (nil, nil) when no such order exists.
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	// FindActive returns orders with status pending, confirmed or
	// in_progress and is_completed = false. Orders in the ready status are
	// not part of the active set.
	FindActive(ctx context.Context) ([]domain.Order, error)
	// Complete marks the order completed exactly once. A second call
	// returns ErrAlreadyCompleted; an unknown id returns ErrOrderNotFound.
	Complete(ctx context.Context, id uint64) (*domain.Order, error)
	// SetStatus overwrites the order status. Transitions are not validated.
	SetStatus(ctx context.Context, id uint64, status domain.OrderStatus) error
}
