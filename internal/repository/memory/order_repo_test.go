package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pavel26ru/BruCup/internal/domain"
	"github.com/Pavel26ru/BruCup/internal/repository"
)

func TestOrderRepository_SaveAssignsMonotonicIDs(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		order := &domain.Order{UserID: 1, Status: domain.StatusPending}
		require.NoError(t, repo.Save(ctx, order))
		assert.Equal(t, uint64(i), order.ID)
	}
}

func TestOrderRepository_FindByID(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	order := &domain.Order{UserID: 1, Status: domain.StatusPending}
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, order.ID, found.ID)

	missing, err := repo.FindByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestOrderRepository_FindActive(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	save := func(status domain.OrderStatus, completed bool) uint64 {
		order := &domain.Order{UserID: 1, Status: status, IsCompleted: completed}
		require.NoError(t, repo.Save(ctx, order))
		return order.ID
	}

	pending := save(domain.StatusPending, false)
	confirmed := save(domain.StatusConfirmed, false)
	inProgress := save(domain.StatusInProgress, false)
	save(domain.StatusReady, false)
	save(domain.StatusCompleted, true)
	save(domain.StatusCancelled, false)

	active, err := repo.FindActive(ctx)
	require.NoError(t, err)

	var ids []uint64
	for _, o := range active {
		ids = append(ids, o.ID)
	}
	// Ready orders are no longer worked on, so they drop out of the active
	// listing along with completed and cancelled ones.
	assert.Equal(t, []uint64{pending, confirmed, inProgress}, ids)
}

func TestOrderRepository_Complete(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	order := &domain.Order{UserID: 1, Status: domain.StatusPending}
	require.NoError(t, repo.Save(ctx, order))

	completed, err := repo.Complete(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, completed.IsCompleted)
	assert.Equal(t, domain.StatusCompleted, completed.Status)

	_, err = repo.Complete(ctx, order.ID)
	assert.ErrorIs(t, err, repository.ErrAlreadyCompleted)

	_, err = repo.Complete(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestOrderRepository_SetStatus(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	order := &domain.Order{UserID: 1, Status: domain.StatusPending}
	require.NoError(t, repo.Save(ctx, order))

	require.NoError(t, repo.SetStatus(ctx, order.ID, domain.StatusInProgress))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, found.Status)

	assert.ErrorIs(t, repo.SetStatus(ctx, 999, domain.StatusReady), repository.ErrOrderNotFound)
}
