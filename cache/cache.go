// Package cache defines the result cache consumed by the repository layer
// and the deterministic key scheme that scopes cached pages.
package cache

import (
	"context"
	"time"
)

// Cache is the key-scoped byte cache the repository reads through.
// Implementations must be safe for concurrent use; no operation may hold
// a lock across backend I/O.
type Cache interface {
	// Get returns the cached value for key. The second return value is
	// false on a miss (including expiry).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for ttl. A zero ttl stores without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Invalidate removes key. Removing an absent key is a no-op.
	Invalidate(ctx context.Context, key string) error
}

// Scope names the ownership level a cached result belongs to.
type Scope string

// Cacheable ownership scopes.
const (
	ScopeOrganization Scope = "organization"
	ScopeProject      Scope = "project"
	ScopeStack        Scope = "stack"
)

// Key builds the cache key for a scope and id. The scheme is deterministic
// and injective over (scope, id): scope names contain no separator, so
// "stack:s1" and "project:s1" never collide.
func Key(scope Scope, id string) string {
	return string(scope) + ":" + id
}
