package holds

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const holdKeyPrefix = "hold:"

// RedisStore keeps pending holds in Redis with a native TTL. Expiry is
// enforced by Redis itself and GETDEL makes the consume atomic, so two
// concurrent confirms of the same hold can never both get it.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisStore creates a Redis-backed hold store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		now:    time.Now,
	}
}

func (s *RedisStore) Put(ctx context.Context, hold PendingHold) error {
	data, err := json.Marshal(hold)
	if err != nil {
		return fmt.Errorf("failed to marshal hold: %w", err)
	}

	ttl := hold.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		// Already expired; storing it would be indistinguishable from not
		return nil
	}

	if err := s.client.Set(ctx, holdKeyPrefix+hold.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store hold: %w", err)
	}

	return nil
}

func (s *RedisStore) Take(ctx context.Context, holdID string) (*PendingHold, error) {
	data, err := s.client.GetDel(ctx, holdKeyPrefix+holdID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrHoldNotFound
		}
		return nil, fmt.Errorf("failed to take hold: %w", err)
	}

	var hold PendingHold
	if err := json.Unmarshal([]byte(data), &hold); err != nil {
		return nil, fmt.Errorf("failed to unmarshal hold: %w", err)
	}

	// Redis TTL already enforces expiry, this guards clock skew at the edge
	if hold.Expired(s.now()) {
		return nil, ErrHoldNotFound
	}

	return &hold, nil
}
