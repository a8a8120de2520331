package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mivanic/redscan/data"
)

// ResultCache holds the last result set per session in redis. The session
// owns the lifecycle: written after a search, replaced by the next one,
// removed on explicit reset or TTL expiry. The core never touches it.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResultCache(client *redis.Client, ttl time.Duration) *ResultCache {
	return &ResultCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns nil without an error when the session has no stored results.
func (c *ResultCache) Get(ctx context.Context, sessionID uuid.UUID) (data.ResultSet, error) {
	raw, err := c.client.Get(ctx, resultKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get results: %w", err)
	}

	var results data.ResultSet
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		return nil, fmt.Errorf("unmarshal results: %w", err)
	}

	return results, nil
}

func (c *ResultCache) Set(ctx context.Context, sessionID uuid.UUID, results data.ResultSet) error {
	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	if err := c.client.Set(ctx, resultKey(sessionID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set results: %w", err)
	}

	return nil
}

func (c *ResultCache) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if err := c.client.Del(ctx, resultKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}

	return nil
}

func resultKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("results:%s", sessionID)
}
