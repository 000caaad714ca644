package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/xraph/grove/kv"
	"github.com/xraph/grove/kv/drivers/redisdriver"
)

// keyPrefix namespaces all faultline cache entries in a shared Redis.
const keyPrefix = "faultline:cache:"

// compile-time interface check.
var _ Cache = (*Redis)(nil)

// Redis is a Cache backed by Redis via Grove KV.
type Redis struct {
	kv  *kv.Store
	rdb goredis.UniversalClient
}

// NewRedis creates a Redis cache backed by Grove KV.
func NewRedis(store *kv.Store) *Redis {
	return &Redis{
		kv:  store,
		rdb: redisdriver.UnwrapClient(store),
	}
}

// Get returns the cached value for key.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := r.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("faultline/cache: get %q: %w", key, err)
	}
	return raw, true, nil
}

// Set stores value under key for ttl. Redis treats a zero expiration as
// no expiry, matching the Cache contract.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.rdb.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("faultline/cache: set %q: %w", key, err)
	}
	return nil
}

// Invalidate removes key.
func (r *Redis) Invalidate(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("faultline/cache: invalidate %q: %w", key, err)
	}
	return nil
}

// Ping checks Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	return r.kv.Ping(ctx)
}

// Close closes the KV store.
func (r *Redis) Close() error {
	return r.kv.Close()
}
