// In file: internal/dedup/redis.go
package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "dedup:"

// RedisStore keeps fingerprints in Redis so several gateway processes share
// one table. Entries expire with the window instead of being cleared in bulk.
type RedisStore struct {
	rdb *redis.Client
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// CheckAndSet relies on SET NX PX: the write only happens when no live key
// exists, which makes check and set a single atomic step.
func (s *RedisStore) CheckAndSet(ctx context.Context, fingerprint string, now time.Time, window time.Duration) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, redisKeyPrefix+fingerprint, now.UnixMilli(), window).Result()
	if err != nil {
		return false, fmt.Errorf("redis SETNX failed: %w", err)
	}
	return ok, nil
}
