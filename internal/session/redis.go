package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Pavel26ru/BruCup/internal/domain"
)

// Abandoned drafts expire on their own instead of piling up.
const draftTTL = 24 * time.Hour

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

var _ Store = (*RedisStore)(nil)

func key(conversationID string) string {
	return fmt.Sprintf("session:%s", conversationID)
}

func (s *RedisStore) Get(ctx context.Context, conversationID string) (domain.Draft, error) {
	raw, err := s.client.Get(ctx, key(conversationID)).Result()
	if err == redis.Nil {
		return domain.Draft{}, nil
	}
	if err != nil {
		return domain.Draft{}, err
	}
	var d domain.Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		// A corrupt draft is unrecoverable; restart the conversation.
		return domain.Draft{}, nil
	}
	return d, nil
}

func (s *RedisStore) Put(ctx context.Context, conversationID string, draft domain.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key(conversationID), data, draftTTL).Err()
}

func (s *RedisStore) Clear(ctx context.Context, conversationID string) error {
	return s.client.Del(ctx, key(conversationID)).Err()
}
