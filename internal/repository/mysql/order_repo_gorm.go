package mysql

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/Pavel26ru/BruCup/internal/domain"
	"github.com/Pavel26ru/BruCup/internal/repository"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Save(ctx context.Context, order *domain.Order) error {
	result := r.db.WithContext(ctx).Create(order)
	if result.Error != nil {
		log.Printf("order save error: %v", result.Error)
		return result.Error
	}
	if order.ID == 0 {
		return errors.New("failed to assign order ID")
	}
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindActive(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Where("status IN ?", []domain.OrderStatus{
			domain.StatusPending, domain.StatusConfirmed, domain.StatusInProgress,
		}).
		Where("is_completed = ?", false).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Complete runs as a compare-and-set inside a transaction so that two admins
// pressing the button at the same time resolve to exactly one completion.
func (r *orderRepo) Complete(ctx context.Context, id uint64) (*domain.Order, error) {
	var completed *domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Order{}).
			Where("id = ? AND is_completed = ?", id, false).
			Updates(map[string]any{
				"status":       domain.StatusCompleted,
				"is_completed": true,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var o domain.Order
			if err := tx.First(&o, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return repository.ErrOrderNotFound
				}
				return err
			}
			return repository.ErrAlreadyCompleted
		}
		var o domain.Order
		if err := tx.First(&o, id).Error; err != nil {
			return err
		}
		completed = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}

func (r *orderRepo) SetStatus(ctx context.Context, id uint64, status domain.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}
	return nil
}
