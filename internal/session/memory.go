package session

import (
	"context"
	"sync"

	"github.com/Pavel26ru/BruCup/internal/domain"
)

type MemoryStore struct {
	mu     sync.Mutex
	drafts map[string]domain.Draft
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string]domain.Draft)}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Get(_ context.Context, conversationID string) (domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts[conversationID], nil
}

func (s *MemoryStore) Put(_ context.Context, conversationID string, draft domain.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[conversationID] = draft
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, conversationID)
	return nil
}
