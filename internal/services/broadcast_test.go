package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Pavel26ru/BruCup/internal/domain"
	"github.com/Pavel26ru/BruCup/internal/mocks"
)

func newTestBroadcastService(users *mocks.MockUserRepository, notifier *mocks.MockNotifier) *BroadcastService {
	service := NewBroadcastService(users, notifier)
	service.delay = 0
	return service
}

func TestBroadcastService_Run(t *testing.T) {
	users := []domain.User{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}

	mockUsers := new(mocks.MockUserRepository)
	mockUsers.On("FindAll", mock.Anything).Return(users, nil)

	mockNotifier := new(mocks.MockNotifier)
	mockNotifier.On("Notify", mock.Anything, int64(1), "Акция!").Return(nil)
	mockNotifier.On("Notify", mock.Anything, int64(2), "Акция!").Return(errors.New("blocked by user"))
	mockNotifier.On("Notify", mock.Anything, int64(3), "Акция!").Return(nil)
	mockNotifier.On("Notify", mock.Anything, int64(4), "Акция!").Return(errors.New("blocked by user"))

	service := newTestBroadcastService(mockUsers, mockNotifier)
	report, err := service.Run(context.Background(), "Акция!")

	assert.NoError(t, err)
	assert.Equal(t, 2, report.Sent)
	assert.Equal(t, 2, report.Failed)
	// Every user is attempted even when earlier sends fail.
	mockNotifier.AssertNumberOfCalls(t, "Notify", 4)
}

func TestBroadcastService_Run_NoUsers(t *testing.T) {
	mockUsers := new(mocks.MockUserRepository)
	mockUsers.On("FindAll", mock.Anything).Return([]domain.User{}, nil)

	service := newTestBroadcastService(mockUsers, new(mocks.MockNotifier))
	report, err := service.Run(context.Background(), "Акция!")

	assert.NoError(t, err)
	assert.Equal(t, BroadcastReport{}, report)
}

func TestBroadcastService_Run_SingleFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	mockUsers := new(mocks.MockUserRepository)
	mockUsers.On("FindAll", mock.Anything).Return([]domain.User{{ID: 1}}, nil)

	mockNotifier := new(mocks.MockNotifier)
	var startedOnce sync.Once
	mockNotifier.On("Notify", mock.Anything, int64(1), mock.Anything).
		Return(nil).
		Run(func(mock.Arguments) {
			startedOnce.Do(func() { close(started) })
			<-release
		})

	service := newTestBroadcastService(mockUsers, mockNotifier)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := service.Run(context.Background(), "первый")
		assert.NoError(t, err)
	}()

	<-started
	_, err := service.Run(context.Background(), "второй")
	assert.ErrorIs(t, err, ErrBroadcastInProgress)

	close(release)
	wg.Wait()

	// The slot frees up once the first run finishes.
	_, err = service.Run(context.Background(), "третий")
	assert.NoError(t, err)
}

func TestBroadcastService_Run_NoTrailingDelay(t *testing.T) {
	mockUsers := new(mocks.MockUserRepository)
	mockUsers.On("FindAll", mock.Anything).Return([]domain.User{{ID: 1}}, nil)

	mockNotifier := new(mocks.MockNotifier)
	mockNotifier.On("Notify", mock.Anything, int64(1), mock.Anything).Return(nil)

	service := NewBroadcastService(mockUsers, mockNotifier)
	service.delay = time.Hour

	// Pacing only applies between sends. If it also ran after the last one,
	// this run would sit in the delay until the deadline and fail.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	report, err := service.Run(ctx, "Акция!")
	assert.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
}

func TestBroadcastService_Run_Cancelled(t *testing.T) {
	mockUsers := new(mocks.MockUserRepository)
	mockUsers.On("FindAll", mock.Anything).Return([]domain.User{{ID: 1}, {ID: 2}}, nil)

	ctx, cancel := context.WithCancel(context.Background())

	mockNotifier := new(mocks.MockNotifier)
	mockNotifier.On("Notify", mock.Anything, int64(1), mock.Anything).
		Return(nil).
		Run(func(mock.Arguments) { cancel() })

	service := newTestBroadcastService(mockUsers, mockNotifier)
	service.delay = time.Millisecond

	report, err := service.Run(ctx, "Акция!")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, report.Sent)
	mockNotifier.AssertNotCalled(t, "Notify", mock.Anything, int64(2), mock.Anything)
}
