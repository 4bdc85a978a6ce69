package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSubmissionTTL = 12 * time.Hour

// SubmissionGuard remembers attendance idempotency keys.
// Key format: attendance:submission:<department>|<cohort>|<subject>|<date>|<idempotency_key>
type SubmissionGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSubmissionGuard(client *redis.Client, ttl time.Duration) *SubmissionGuard {
	if ttl <= 0 {
		ttl = defaultSubmissionTTL
	}
	return &SubmissionGuard{client: client, ttl: ttl}
}

// Claim sets the key only if it is absent and reports whether it did.
func (g *SubmissionGuard) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(key), time.Now().UTC().Format(time.RFC3339), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("submission guard: %w", err)
	}
	return ok, nil
}

// Release deletes a claimed key.
func (g *SubmissionGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.key(key)).Err(); err != nil {
		return fmt.Errorf("submission guard release: %w", err)
	}
	return nil
}

func (g *SubmissionGuard) key(k string) string {
	return "attendance:submission:" + k
}
