package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"glambook/models"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps sessions as JSON blobs with a sliding TTL: every save
// refreshes the expiry.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisStore builds a store on the given client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &RedisStore{Client: client, TTL: ttl}
}

func sessionKey(sessionID string) string {
	return "agent:session:" + sessionID
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.ConversationMemory, error) {
	raw, err := s.Client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	var mem models.ConversationMemory
	if err := json.Unmarshal([]byte(raw), &mem); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &mem, nil
}

func (s *RedisStore) Save(ctx context.Context, mem *models.ConversationMemory) error {
	raw, err := json.Marshal(mem)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.Client.Set(ctx, sessionKey(mem.SessionID), raw, s.TTL).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.Client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

// SweepIdle removes sessions whose last update is older than maxIdle.
// Redis expiry already handles the common case; the sweep catches blobs
// written with a longer TTL before a config change.
func (s *RedisStore) SweepIdle(ctx context.Context, maxIdle time.Duration) (int, error) {
	var removed int
	iter := s.Client.Scan(ctx, 0, sessionKey("*"), 200).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		raw, err := s.Client.Get(ctx, key).Result()
		if err != nil {
			continue
		}
		var mem models.ConversationMemory
		if err := json.Unmarshal([]byte(raw), &mem); err != nil {
			// Unreadable blob: drop it.
			s.Client.Del(ctx, key)
			removed++
			continue
		}
		if time.Since(mem.UpdatedAt) > maxIdle {
			s.Client.Del(ctx, key)
			removed++
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("session sweep: %w", err)
	}
	return removed, nil
}
