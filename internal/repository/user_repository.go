package repository

import (
	"context"

	"github.com/Pavel26ru/BruCup/internal/domain"
)

type UserRepository interface {
	// FindByID returns (nil, nil) when the user is unknown.
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// Add fails with ErrDuplicateUser when the id already exists.
	Add(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	FindAll(ctx context.Context) ([]domain.User, error)
}
