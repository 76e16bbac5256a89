package memory

import (
	"context"
	"sync"

	"github.com/Pavel26ru/BruCup/internal/domain"
	"github.com/Pavel26ru/BruCup/internal/repository"
)

// OrderRepository keeps orders in process memory. It backs tests and
// single-process deployments; ids are monotonic and never reused.
type OrderRepository struct {
	mu     sync.Mutex
	nextID uint64
	orders map[uint64]domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{nextID: 1, orders: make(map[uint64]domain.Order)}
}

var _ repository.OrderRepository = (*OrderRepository)(nil)

func (r *OrderRepository) Save(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.ID = r.nextID
	r.nextID++
	r.orders[order.ID] = *order
	return nil
}

func (r *OrderRepository) FindByID(_ context.Context, id uint64) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *OrderRepository) FindActive(_ context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for id := uint64(1); id < r.nextID; id++ {
		o, ok := r.orders[id]
		if !ok {
			continue
		}
		switch o.Status {
		case domain.StatusPending, domain.StatusConfirmed, domain.StatusInProgress:
			if !o.IsCompleted {
				out = append(out, o)
			}
		}
	}
	return out, nil
}

func (r *OrderRepository) Complete(_ context.Context, id uint64) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	if o.IsCompleted {
		return nil, repository.ErrAlreadyCompleted
	}
	o.Status = domain.StatusCompleted
	o.IsCompleted = true
	r.orders[id] = o
	return &o, nil
}

func (r *OrderRepository) SetStatus(_ context.Context, id uint64, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	o.Status = status
	r.orders[id] = o
	return nil
}
