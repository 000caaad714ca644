// Package repository implements the generic ownership-scoped query layer.
//
// A Repository wraps a storage Backend for one document type and enforces
// the authorization and ownership invariants of the Organization → Project
// → Stack → Event hierarchy: every read is scoped to organizations the
// calling context can access, parent entities are resolved and checked
// before any query executes, and authorization failures surface as
// ErrNotFound so that access checks never disclose existence.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/xraph/faultline/cache"
	"github.com/xraph/faultline/observability"
	"github.com/xraph/faultline/paging"
	"github.com/xraph/faultline/scope"
)

// Sentinel errors returned by repository operations.
var (
	// ErrNotFound is returned when a document or parent scope does not
	// exist or the caller may not access it. Missing and unauthorized are
	// deliberately indistinguishable.
	ErrNotFound = errors.New("faultline: not found")

	// ErrMissingStackID is returned when a write batch contains a
	// stack-owned document without its owning stack id. The whole batch
	// is rejected before any storage I/O.
	ErrMissingStackID = errors.New("faultline: stack id must be set on every document")

	// ErrNotStackScoped is returned when a stack-scoped operation is
	// invoked on a repository whose backend has no stack-delete
	// capability.
	ErrNotStackScoped = errors.New("faultline: repository is not stack-scoped")
)

// OwnerResolver resolves the owning organization of a parent entity
// (project or stack) by id. Implementations return ErrNotFound when the
// parent does not exist.
type OwnerResolver func(ctx context.Context, id string) (orgID string, err error)

// Repository is the generic ownership-scoped query/write layer for one
// document type. Stateless per call; safe for concurrent use.
type Repository[T Document] struct {
	backend      Backend[T]
	remover      StackRemover
	projectOwner OwnerResolver
	stackOwner   OwnerResolver
	cache        cache.Cache
	cacheTTL     time.Duration
	defaultLimit int
	metrics      *observability.Metrics
	logger       *slog.Logger
}

// Option configures a Repository.
type Option[T Document] func(*Repository[T])

// WithStackRemover enables RemoveAllByStackID through the given remover.
func WithStackRemover[T Document](r StackRemover) Option[T] {
	return func(repo *Repository[T]) { repo.remover = r }
}

// WithProjectOwner sets the resolver used to verify project-scoped reads.
func WithProjectOwner[T Document](resolve OwnerResolver) Option[T] {
	return func(repo *Repository[T]) { repo.projectOwner = resolve }
}

// WithStackOwner sets the resolver used to verify stack-scoped reads.
func WithStackOwner[T Document](resolve OwnerResolver) Option[T] {
	return func(repo *Repository[T]) { repo.stackOwner = resolve }
}

// WithCache enables optional result caching with the given default TTL.
func WithCache[T Document](c cache.Cache, defaultTTL time.Duration) Option[T] {
	return func(repo *Repository[T]) {
		repo.cache = c
		repo.cacheTTL = defaultTTL
	}
}

// WithDefaultLimit sets the page size used when a query does not
// specify one. Non-positive means paging.DefaultLimit.
func WithDefaultLimit[T Document](n int) Option[T] {
	return func(repo *Repository[T]) { repo.defaultLimit = n }
}

// WithMetrics sets the metric instruments.
func WithMetrics[T Document](m *observability.Metrics) Option[T] {
	return func(repo *Repository[T]) { repo.metrics = m }
}

// WithLogger sets the structured logger.
func WithLogger[T Document](logger *slog.Logger) Option[T] {
	return func(repo *Repository[T]) { repo.logger = logger }
}

// New creates a Repository over the given backend.
func New[T Document](backend Backend[T], opts ...Option[T]) *Repository[T] {
	repo := &Repository[T]{
		backend: backend,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// ──────────────────────────────────────────────────
// Reads
// ──────────────────────────────────────────────────

// GetByOrganizationIDs returns a page of documents restricted to the given
// organization ids. Every requested id must be accessible to the context
// caller; an inaccessible id behaves exactly like a nonexistent one.
func (r *Repository[T]) GetByOrganizationIDs(ctx context.Context, orgIDs []string, opts *paging.Options) ([]T, error) {
	caller, _ := scope.From(ctx)
	for _, orgID := range orgIDs {
		if !caller.CanAccessOrganization(orgID) {
			return nil, ErrNotFound
		}
	}
	if len(orgIDs) == 0 {
		return nil, nil
	}

	return r.page(ctx, Query{OrganizationIDs: orgIDs}, opts)
}

// GetByProjectID returns a page of documents owned by the project. The
// project is resolved first and its organization checked against the
// caller; a missing project and a forbidden one are indistinguishable.
func (r *Repository[T]) GetByProjectID(ctx context.Context, projectID string, opts *paging.Options) ([]T, error) {
	if err := r.authorizeParent(ctx, r.projectOwner, projectID); err != nil {
		return nil, err
	}

	return r.page(ctx, Query{ProjectID: projectID}, opts)
}

// ReadOption configures a single scoped read.
type ReadOption struct {
	useCache bool
	ttl      time.Duration
}

// UseCache enables result caching for this read with the repository's
// default TTL.
func UseCache() ReadOption { return ReadOption{useCache: true} }

// UseCacheFor enables result caching for this read with an explicit TTL.
func UseCacheFor(ttl time.Duration) ReadOption {
	return ReadOption{useCache: true, ttl: ttl}
}

// GetByStackID returns a page of documents owned by the stack, optionally
// served from cache. Queries filter on the stack id field itself.
//
// The cache entry is keyed by stack alone, not by the paging window:
// a cached page answers every before/after/limit combination until a
// write to the stack invalidates it or the TTL expires. Cached reads
// are therefore only coherent for the default window; callers paging
// with cursors should skip the cache.
func (r *Repository[T]) GetByStackID(ctx context.Context, stackID string, opts *paging.Options, ropts ...ReadOption) ([]T, error) {
	if err := r.authorizeParent(ctx, r.stackOwner, stackID); err != nil {
		return nil, err
	}

	var read ReadOption
	for _, ro := range ropts {
		if ro.useCache {
			read = ro
		}
	}

	key := cache.Key(cache.ScopeStack, stackID)
	if read.useCache && r.cache != nil {
		if items, ok := r.cachedPage(ctx, key, opts); ok {
			r.metrics.CacheHit()
			return items, nil
		}
		r.metrics.CacheMiss()
	}

	items, err := r.page(ctx, Query{StackID: stackID}, opts)
	if err != nil {
		return nil, err
	}

	if read.useCache && r.cache != nil {
		ttl := read.ttl
		if ttl == 0 {
			ttl = r.cacheTTL
		}
		r.storePage(ctx, key, items, opts, ttl)
	}

	return items, nil
}

// GetByID returns a single document. Access is checked against whichever
// ownership capability the document carries; failures are uniform
// ErrNotFound.
func (r *Repository[T]) GetByID(ctx context.Context, docID string) (T, error) {
	var zero T
	if docID == "" {
		return zero, ErrNotFound
	}

	doc, err := r.backend.Get(ctx, docID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("faultline: get %q: %w", docID, err)
	}

	if owned, ok := any(doc).(OwnedByOrganization); ok {
		caller, _ := scope.From(ctx)
		if !caller.CanAccessOrganization(owned.OwningOrganizationID()) {
			return zero, ErrNotFound
		}
	}

	return doc, nil
}

// ──────────────────────────────────────────────────
// Writes
// ──────────────────────────────────────────────────

// Add validates and persists a batch. Validation runs before any storage
// I/O: if any stack-owned document is missing its stack id, the entire
// batch is rejected and nothing is persisted.
func (r *Repository[T]) Add(ctx context.Context, docs []T) error {
	if len(docs) == 0 {
		return nil
	}

	if err := beforeAdd(docs); err != nil {
		return err
	}

	if err := r.backend.Insert(ctx, docs); err != nil {
		return fmt.Errorf("faultline: insert batch: %w", err)
	}

	r.invalidateStacks(ctx, docs)
	return nil
}

// beforeAdd is the write-path validation hook: every stack-owned document
// in the batch must carry a non-empty owning stack id.
func beforeAdd[T Document](docs []T) error {
	for _, doc := range docs {
		if owned, ok := any(doc).(OwnedByStack); ok && owned.OwningStackID() == "" {
			return ErrMissingStackID
		}
	}
	return nil
}

// RemoveAllByStackID bulk-deletes every document owned by the stack and
// drops the stack-scoped cache entry. Idempotent: repeating the call
// after completion removes nothing and succeeds.
func (r *Repository[T]) RemoveAllByStackID(ctx context.Context, stackID string) error {
	if r.remover == nil {
		return ErrNotStackScoped
	}
	if stackID == "" {
		return nil
	}

	removed, err := r.remover.DeleteByStackID(ctx, stackID)
	if err != nil {
		return fmt.Errorf("faultline: remove by stack %q: %w", stackID, err)
	}
	r.metrics.EventsRemoved(removed)

	if r.cache != nil {
		if err := r.cache.Invalidate(ctx, cache.Key(cache.ScopeStack, stackID)); err != nil {
			r.logger.ErrorContext(ctx, "cache invalidation failed", "stack_id", stackID, "error", err)
		}
	}

	r.logger.DebugContext(ctx, "removed documents by stack", "stack_id", stackID, "removed", removed)
	return nil
}

// ──────────────────────────────────────────────────
// Paging
// ──────────────────────────────────────────────────

// page runs a windowed query. It fetches one row beyond the limit to
// decide HasMore without a second count query. After-only windows query
// ascending so the page adjoins the cursor, then flip back to the
// descending presentation order.
func (r *Repository[T]) page(ctx context.Context, q Query, opts *paging.Options) ([]T, error) {
	limit := opts.EffectiveLimitWith(r.defaultLimit)

	if opts != nil {
		q.Before = opts.Before
		q.After = opts.After
	}
	q.Ascending = q.After != nil && q.Before == nil
	q.Limit = limit + 1

	items, err := r.backend.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("faultline: find: %w", err)
	}

	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}
	if q.Ascending {
		reverse(items)
	}
	if opts != nil {
		opts.HasMore = hasMore
	}

	return items, nil
}

func reverse[T any](items []T) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}

// ──────────────────────────────────────────────────
// Internals
// ──────────────────────────────────────────────────

// authorizeParent resolves the owning organization of a parent entity and
// checks caller access. All failure modes collapse into ErrNotFound.
func (r *Repository[T]) authorizeParent(ctx context.Context, resolve OwnerResolver, parentID string) error {
	if parentID == "" || resolve == nil {
		return ErrNotFound
	}

	orgID, err := resolve(ctx, parentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("faultline: resolve parent %q: %w", parentID, err)
	}

	caller, _ := scope.From(ctx)
	if !caller.CanAccessOrganization(orgID) {
		return ErrNotFound
	}
	return nil
}

// cachedPage is the serialized form of a cached result window.
type cachedPage[T Document] struct {
	Items   []T  `json:"items"`
	HasMore bool `json:"has_more"`
}

func (r *Repository[T]) cachedPage(ctx context.Context, key string, opts *paging.Options) ([]T, bool) {
	raw, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.ErrorContext(ctx, "cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var page cachedPage[T]
	if err := json.Unmarshal(raw, &page); err != nil {
		r.logger.ErrorContext(ctx, "cache entry corrupt", "key", key, "error", err)
		return nil, false
	}

	if opts != nil {
		opts.HasMore = page.HasMore
	}
	return page.Items, true
}

func (r *Repository[T]) storePage(ctx context.Context, key string, items []T, opts *paging.Options, ttl time.Duration) {
	page := cachedPage[T]{Items: items}
	if opts != nil {
		page.HasMore = opts.HasMore
	}

	raw, err := json.Marshal(page)
	if err != nil {
		r.logger.ErrorContext(ctx, "cache encode failed", "key", key, "error", err)
		return
	}
	if err := r.cache.Set(ctx, key, raw, ttl); err != nil {
		r.logger.ErrorContext(ctx, "cache write failed", "key", key, "error", err)
	}
}

// invalidateStacks drops the stack-scoped cache entries touched by a
// write batch so cached pages never outlive a write to their scope.
func (r *Repository[T]) invalidateStacks(ctx context.Context, docs []T) {
	if r.cache == nil {
		return
	}

	seen := make(map[string]struct{}, 1)
	for _, doc := range docs {
		owned, ok := any(doc).(OwnedByStack)
		if !ok {
			continue
		}
		stackID := owned.OwningStackID()
		if _, dup := seen[stackID]; dup {
			continue
		}
		seen[stackID] = struct{}{}

		if err := r.cache.Invalidate(ctx, cache.Key(cache.ScopeStack, stackID)); err != nil {
			r.logger.ErrorContext(ctx, "cache invalidation failed", "stack_id", stackID, "error", err)
		}
	}
}
