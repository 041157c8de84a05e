package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyGuard stores createClient outcomes keyed by the caller's
// Idempotency-Key so retried requests replay the original result.
// Key format: idem:client:<key> → created client id.
type IdempotencyGuard struct {
	client *redis.Client
}

// NewIdempotencyGuard creates a guard wrapping the given Redis client.
func NewIdempotencyGuard(client *redis.Client) *IdempotencyGuard {
	return &IdempotencyGuard{client: client}
}

// Lookup returns the client id previously stored under key, or 0 when unseen.
func (g *IdempotencyGuard) Lookup(ctx context.Context, key string) (int64, error) {
	val, err := g.client.Get(ctx, g.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("idempotency lookup: %w", err)
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("idempotency value: %w", err)
	}
	return id, nil
}

// Remember stores clientID under key; entries expire after a day.
func (g *IdempotencyGuard) Remember(ctx context.Context, key string, clientID int64) error {
	return g.client.Set(ctx, g.key(key), strconv.FormatInt(clientID, 10), idempotencyTTL).Err()
}

func (g *IdempotencyGuard) key(key string) string {
	return "idem:client:" + key
}
