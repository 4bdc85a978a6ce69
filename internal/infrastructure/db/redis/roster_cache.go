package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
)

const (
	rosterKeyPrefix  = "roster:"
	defaultRosterTTL = 5 * time.Minute
)

// RosterCache stores listed cohort rosters as JSON.
// Key format: roster:<department|*>:<year>/<sem>/<div>
type RosterCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRosterCache(client *redis.Client, ttl time.Duration) *RosterCache {
	if ttl <= 0 {
		ttl = defaultRosterTTL
	}
	return &RosterCache{client: client, ttl: ttl}
}

func (c *RosterCache) Get(ctx context.Context, key string) ([]domain.User, bool, error) {
	raw, err := c.client.Get(ctx, rosterKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("roster cache get: %w", err)
	}

	var users []domain.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, false, fmt.Errorf("roster cache decode: %w", err)
	}
	return users, true, nil
}

func (c *RosterCache) Set(ctx context.Context, key string, users []domain.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("roster cache encode: %w", err)
	}
	return c.client.Set(ctx, rosterKeyPrefix+key, raw, c.ttl).Err()
}

func (c *RosterCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = rosterKeyPrefix + k
	}
	return c.client.Del(ctx, full...).Err()
}
