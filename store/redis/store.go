// Package redis provides a Redis-backed Store implementation via Grove KV.
//
// Entities are stored as JSON blobs under prefixed keys; sorted sets
// keyed by owner id index them by date. Range queries read the
// narrowest index for the query, load the candidates, and re-apply the
// exact filter in memory, so float-rounded scores never change results.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/xraph/grove/kv"
	"github.com/xraph/grove/kv/drivers/redisdriver"

	"github.com/xraph/faultline/repository"
	faultstore "github.com/xraph/faultline/store"
)

// compile-time interface check
var _ faultstore.Store = (*Store)(nil)

// Store implements store.Store using Redis via Grove KV.
type Store struct {
	kv  *kv.Store
	rdb goredis.UniversalClient
}

// New creates a new Redis store backed by Grove KV.
func New(store *kv.Store) *Store {
	return &Store{
		kv:  store,
		rdb: redisdriver.UnwrapClient(store),
	}
}

// Migrate is a no-op for Redis (no schema migrations needed).
func (s *Store) Migrate(_ context.Context) error {
	return nil
}

// Ping checks Redis connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

// Close closes the KV store.
func (s *Store) Close() error {
	return s.kv.Close()
}

// ──────────────────────────────────────────────────
// Entity codec
// ──────────────────────────────────────────────────

// isNotFound checks if an error is a KV not-found sentinel.
func isNotFound(err error) bool {
	return errors.Is(err, kv.ErrNotFound)
}

// getEntity retrieves and decodes a JSON entity from a KV key.
func (s *Store) getEntity(ctx context.Context, key string, dest any) error {
	raw, err := s.kv.GetRaw(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// setEntity encodes and stores a JSON entity under a KV key.
func (s *Store) setEntity(ctx context.Context, key string, value any) error {
	raw, err := marshalEntity(value)
	if err != nil {
		return err
	}
	return s.kv.SetRaw(ctx, key, raw)
}

func marshalEntity(value any) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("faultline/redis: marshal entity: %w", err)
	}
	return raw, nil
}

// ──────────────────────────────────────────────────
// Index queries
// ──────────────────────────────────────────────────

// scoreFromTime converts a time.Time to a sorted set score (unix
// seconds as float64).
func scoreFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

// scoreBounds converts the query's date window into sorted set score
// bounds. Scores lose sub-microsecond precision to float rounding, so
// each bound widens by a millisecond; Matches re-filters exactly.
func scoreBounds(q repository.Query) (string, string) {
	lo, hi := "-inf", "+inf"
	if q.After != nil {
		lo = strconv.FormatFloat(scoreFromTime(*q.After)-0.001, 'f', -1, 64)
	}
	if q.Before != nil {
		hi = strconv.FormatFloat(scoreFromTime(*q.Before)+0.001, 'f', -1, 64)
	}
	return lo, hi
}

// indexMembers returns the candidate ids from the given index keys,
// bounded by the query's date window. An entity lives in exactly one
// index per axis, so members across keys never repeat.
func (s *Store) indexMembers(ctx context.Context, keys []string, q repository.Query) ([]string, error) {
	lo, hi := scoreBounds(q)
	var ids []string
	for _, key := range keys {
		members, err := s.rdb.ZRangeByScore(ctx, key, &goredis.ZRangeBy{
			Min: lo,
			Max: hi,
		}).Result()
		if err != nil {
			return nil, err
		}
		ids = append(ids, members...)
	}
	return ids, nil
}

// sortAndLimit orders documents per the query, breaking date ties by ID
// so ordering is deterministic under equal dates.
func sortAndLimit[T repository.Document](docs []T, q repository.Query) []T {
	sort.Slice(docs, func(i, j int) bool {
		di, dj := docs[i].DocumentDate(), docs[j].DocumentDate()
		if q.Ascending {
			if !di.Equal(dj) {
				return di.Before(dj)
			}
			return docs[i].DocumentID() < docs[j].DocumentID()
		}
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return docs[i].DocumentID() > docs[j].DocumentID()
	})

	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs
}
