package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Pavel26ru/BruCup/internal/domain"
	"github.com/Pavel26ru/BruCup/internal/mocks"
	"github.com/Pavel26ru/BruCup/internal/repository"
)

func newOrderService(repo repository.OrderRepository) *OrderService {
	catalog := newTestCatalog()
	return NewOrderService(repo, catalog, NewPricingService(catalog))
}

func TestOrderService_Create(t *testing.T) {
	tests := []struct {
		name          string
		draft         domain.Draft
		userID        int64
		expectedError error
		check         func(*testing.T, *domain.Order)
	}{
		{
			name:   "full draft is denormalized and priced once",
			draft:  finalizedDraft(),
			userID: TestUserID,
			check: func(t *testing.T, order *domain.Order) {
				assert.Equal(t, TestUserID, order.UserID)
				assert.Equal(t, "Латте", order.ProductName)
				assert.Equal(t, "300мл", order.Volume)
				assert.Equal(t, "", order.MilkName)
				assert.Equal(t, "Карамель", order.SyrupName)
				assert.Equal(t, 2, order.Quantity)
				assert.Equal(t, int64((200+30)*2), order.TotalPrice)
				assert.Equal(t, domain.StatusPending, order.Status)
				assert.False(t, order.IsCompleted)
			},
		},
		{
			name: "quantity defaults to one",
			draft: func() domain.Draft {
				d := finalizedDraft()
				d.Quantity = 0
				d.SyrupID = 0
				return d
			}(),
			userID: TestUserID,
			check: func(t *testing.T, order *domain.Order) {
				assert.Equal(t, 1, order.Quantity)
				assert.Equal(t, int64(200), order.TotalPrice)
			},
		},
		{
			name: "missing product",
			draft: func() domain.Draft {
				d := finalizedDraft()
				d.ProductID = 0
				return d
			}(),
			userID:        TestUserID,
			expectedError: ErrMissingField,
		},
		{
			name: "missing volume",
			draft: func() domain.Draft {
				d := finalizedDraft()
				d.Volume = ""
				return d
			}(),
			userID:        TestUserID,
			expectedError: ErrMissingField,
		},
		{
			name: "missing pickup time",
			draft: func() domain.Draft {
				d := finalizedDraft()
				d.PickupTime = ""
				return d
			}(),
			userID:        TestUserID,
			expectedError: ErrMissingField,
		},
		{
			name: "missing address",
			draft: func() domain.Draft {
				d := finalizedDraft()
				d.Address = ""
				return d
			}(),
			userID:        TestUserID,
			expectedError: ErrMissingField,
		},
		{
			name:          "missing user",
			draft:         finalizedDraft(),
			userID:        0,
			expectedError: ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockOrderRepository)
			if tt.expectedError == nil {
				mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Order")).
					Return(nil).
					Run(func(args mock.Arguments) {
						order := args.Get(1).(*domain.Order)
						order.ID = 1
					})
			}

			service := newOrderService(mockRepo)
			order, err := service.Create(context.Background(), tt.draft, tt.userID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, order)
				assert.Equal(t, uint64(1), order.ID)
				tt.check(t, order)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_Create_RepoError(t *testing.T) {
	mockRepo := new(mocks.MockOrderRepository)
	mockRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("database error"))

	service := newOrderService(mockRepo)
	order, err := service.Create(context.Background(), finalizedDraft(), TestUserID)

	assert.Error(t, err)
	assert.Nil(t, order)
}

func TestOrderService_Complete(t *testing.T) {
	completed := &domain.Order{ID: 7, UserID: TestUserID, Status: domain.StatusCompleted, IsCompleted: true}

	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockOrderRepository)
		expectedError error
	}{
		{
			name: "success",
			setupMocks: func(m *mocks.MockOrderRepository) {
				m.On("Complete", mock.Anything, uint64(7)).Return(completed, nil)
			},
		},
		{
			name: "not found stays distinct",
			setupMocks: func(m *mocks.MockOrderRepository) {
				m.On("Complete", mock.Anything, uint64(7)).Return(nil, repository.ErrOrderNotFound)
			},
			expectedError: ErrOrderNotFound,
		},
		{
			name: "already completed stays distinct",
			setupMocks: func(m *mocks.MockOrderRepository) {
				m.On("Complete", mock.Anything, uint64(7)).Return(nil, repository.ErrAlreadyCompleted)
			},
			expectedError: ErrAlreadyCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockOrderRepository)
			tt.setupMocks(mockRepo)

			service := newOrderService(mockRepo)
			order, err := service.Complete(context.Background(), 7)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.NotErrorIs(t, err, otherCompletionError(tt.expectedError))
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, completed, order)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

// otherCompletionError returns the sentinel the error must NOT match, to pin
// that the two completion outcomes never conflate.
func otherCompletionError(err error) error {
	if errors.Is(err, ErrOrderNotFound) {
		return ErrAlreadyCompleted
	}
	return ErrOrderNotFound
}

func TestOrderService_ByID(t *testing.T) {
	mockRepo := new(mocks.MockOrderRepository)
	mockRepo.On("FindByID", mock.Anything, uint64(1)).Return(&domain.Order{ID: 1}, nil)
	mockRepo.On("FindByID", mock.Anything, uint64(999)).Return(nil, nil)

	service := newOrderService(mockRepo)

	order, err := service.ByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), order.ID)

	order, err = service.ByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Nil(t, order)
}
