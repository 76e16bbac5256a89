package services

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/Pavel26ru/BruCup/internal/infra"
	"github.com/Pavel26ru/BruCup/internal/repository"
)

var ErrBroadcastInProgress = errors.New("broadcast already in progress")

// defaultSendDelay paces outbound sends to stay under transport rate limits.
const defaultSendDelay = 100 * time.Millisecond

// BroadcastService fans a message out to every known user. Sends are
// independent: one blocked user never aborts the batch.
type BroadcastService struct {
	users    repository.UserRepository
	notifier infra.Notifier
	delay    time.Duration
	inflight *semaphore.Weighted
}

func NewBroadcastService(users repository.UserRepository, notifier infra.Notifier) *BroadcastService {
	return &BroadcastService{
		users:    users,
		notifier: notifier,
		delay:    defaultSendDelay,
		inflight: semaphore.NewWeighted(1),
	}
}

type BroadcastReport struct {
	Sent   int
	Failed int
}

// Run delivers text to all users, pacing each send. Only one broadcast may
// run at a time; the operation stops early when ctx is cancelled and holds
// no lock on order or catalog state while it runs.
func (s *BroadcastService) Run(ctx context.Context, text string) (BroadcastReport, error) {
	if !s.inflight.TryAcquire(1) {
		return BroadcastReport{}, ErrBroadcastInProgress
	}
	defer s.inflight.Release(1)

	users, err := s.users.FindAll(ctx)
	if err != nil {
		return BroadcastReport{}, err
	}

	var report BroadcastReport
	for i, user := range users {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := s.notifier.Notify(ctx, user.ID, text); err != nil {
			log.Printf("broadcast: user %d failed: %v", user.ID, err)
			report.Failed++
		} else {
			report.Sent++
		}

		// The delay paces consecutive sends; the last one has nothing to
		// wait for.
		if s.delay > 0 && i < len(users)-1 {
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			case <-time.After(s.delay):
			}
		}
	}
	return report, nil
}
