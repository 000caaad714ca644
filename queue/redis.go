package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/xraph/grove/kv"
	"github.com/xraph/grove/kv/drivers/redisdriver"
)

// listKey is the Redis list all pending envelopes are pushed onto.
const listKey = "faultline:posts"

// compile-time interface check.
var _ Queue = (*Redis)(nil)

// Redis is a Queue backed by a Redis list via Grove KV. Producers LPUSH,
// consumers RPOP, so envelopes pop in submission order.
type Redis struct {
	kv  *kv.Store
	rdb goredis.UniversalClient
}

// NewRedis creates a Redis queue backed by Grove KV.
func NewRedis(store *kv.Store) *Redis {
	return &Redis{
		kv:  store,
		rdb: redisdriver.UnwrapClient(store),
	}
}

// Enqueue pushes the envelope onto the list. The push is a single broker
// operation: either the whole envelope lands or the error surfaces as
// ErrUnavailable with nothing delivered.
func (r *Redis) Enqueue(ctx context.Context, env *Envelope) error {
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("faultline/queue: marshal envelope: %w", err)
	}

	if err := r.rdb.LPush(ctx, listKey, raw).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Dequeue pops the oldest pending envelope.
func (r *Redis) Dequeue(ctx context.Context) (*Envelope, error) {
	raw, err := r.rdb.RPop(ctx, listKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("faultline/queue: dequeue: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("faultline/queue: unmarshal envelope: %w", err)
	}
	return &env, nil
}

// Len returns the number of pending envelopes.
func (r *Redis) Len(ctx context.Context) (int64, error) {
	return r.rdb.LLen(ctx, listKey).Result()
}

// Ping checks Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	return r.kv.Ping(ctx)
}

// Close closes the KV store.
func (r *Redis) Close() error {
	return r.kv.Close()
}
