package services

import (
	"context"
	"errors"

	"github.com/Pavel26ru/BruCup/internal/domain"
	"github.com/Pavel26ru/BruCup/internal/repository"
)

type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// GetOrCreate registers the user on first contact and refreshes profile
// fields that changed since. A concurrent first contact can make Add fail
// with a duplicate; the canonical record is re-fetched instead of erroring.
func (s *UserService) GetOrCreate(ctx context.Context, id int64, username, firstName, lastName string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user != nil {
		if user.Username != username || user.FirstName != firstName || user.LastName != lastName {
			user.Username = username
			user.FirstName = firstName
			user.LastName = lastName
			if err := s.repo.Update(ctx, user); err != nil {
				return nil, err
			}
		}
		return user, nil
	}

	newUser := &domain.User{
		ID:        id,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := s.repo.Add(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return s.repo.FindByID(ctx, id)
		}
		return nil, err
	}
	return newUser, nil
}

func (s *UserService) ByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) All(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

// IsAdmin gates staff commands. Unknown users are not admins.
func (s *UserService) IsAdmin(ctx context.Context, id int64) bool {
	user, err := s.repo.FindByID(ctx, id)
	return err == nil && user != nil && user.IsAdmin
}
