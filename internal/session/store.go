// Package session holds per-conversation draft state. Each conversation is
// keyed independently, so concurrent users never see each other's drafts.
package session

import (
	"context"

	"github.com/Pavel26ru/BruCup/internal/domain"
)

type Store interface {
	// Get returns the draft for the conversation, or an empty idle draft
	// when none exists.
	Get(ctx context.Context, conversationID string) (domain.Draft, error)
	Put(ctx context.Context, conversationID string, draft domain.Draft) error
	Clear(ctx context.Context, conversationID string) error
}
