package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Pavel26ru/BruCup/internal/domain"
	"github.com/Pavel26ru/BruCup/internal/repository"
)

var (
	ErrOrderNotFound    = repository.ErrOrderNotFound
	ErrAlreadyCompleted = repository.ErrAlreadyCompleted

	// ErrMissingField is a contract violation by the caller, not a user
	// input problem: the conversation flow must not confirm an
	// incomplete draft.
	ErrMissingField = errors.New("order draft is missing a required field")
)

// OrderService owns the order lifecycle: creation from a finalized draft,
// status transitions and the active-order query.
type OrderService struct {
	repo    repository.OrderRepository
	catalog repository.CatalogRepository
	pricing *PricingService
}

func NewOrderService(repo repository.OrderRepository, catalog repository.CatalogRepository, pricing *PricingService) *OrderService {
	return &OrderService{repo: repo, catalog: catalog, pricing: pricing}
}

// Create persists a new pending order from a finalized draft. Product and
// option names are resolved and stored on the order itself, and the total is
// priced exactly once here; later catalog changes never touch the record.
func (s *OrderService) Create(ctx context.Context, draft domain.Draft, userID int64) (*domain.Order, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: user id", ErrMissingField)
	}
	product := s.catalog.ProductByID(draft.ProductID)
	if product == nil {
		return nil, fmt.Errorf("%w: product", ErrMissingField)
	}
	if draft.Volume == "" {
		return nil, fmt.Errorf("%w: volume", ErrMissingField)
	}
	if draft.PickupTime == "" {
		return nil, fmt.Errorf("%w: pickup time", ErrMissingField)
	}
	if draft.Address == "" {
		return nil, fmt.Errorf("%w: address", ErrMissingField)
	}

	quantity := draft.Quantity
	if quantity == 0 {
		quantity = 1
	}

	var milkName, syrupName string
	if draft.MilkID != 0 {
		if milk := s.catalog.OptionByID(draft.MilkID); milk != nil {
			milkName = milk.Name
		}
	}
	if draft.SyrupID != 0 {
		if syrup := s.catalog.OptionByID(draft.SyrupID); syrup != nil {
			syrupName = syrup.Name
		}
	}

	order := &domain.Order{
		UserID:      userID,
		Address:     draft.Address,
		ProductName: product.Name,
		Volume:      draft.Volume,
		Quantity:    quantity,
		MilkName:    milkName,
		SyrupName:   syrupName,
		PickupTime:  draft.PickupTime,
		TotalPrice:  s.pricing.Total(draft),
		Status:      domain.StatusPending,
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ByID(ctx context.Context, id uint64) (*domain.Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// Complete marks the order done. Repeated calls and unknown ids come back as
// distinct errors so callers can word their replies differently.
func (s *OrderService) Complete(ctx context.Context, id uint64) (*domain.Order, error) {
	return s.repo.Complete(ctx, id)
}

// Active returns orders the staff still has to make: pending, confirmed or
// in_progress and not completed.
func (s *OrderService) Active(ctx context.Context) ([]domain.Order, error) {
	return s.repo.FindActive(ctx)
}

// SetStatus applies an explicit status transition without graph validation.
func (s *OrderService) SetStatus(ctx context.Context, id uint64, status domain.OrderStatus) error {
	return s.repo.SetStatus(ctx, id, status)
}
