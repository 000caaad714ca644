package faultline

import (
	"context"
	"log/slog"

	"github.com/xraph/faultline/cache"
	"github.com/xraph/faultline/event"
	"github.com/xraph/faultline/ingest"
	"github.com/xraph/faultline/observability"
	"github.com/xraph/faultline/queue"
	"github.com/xraph/faultline/repository"
	"github.com/xraph/faultline/stack"
	"github.com/xraph/faultline/store"
)

// Faultline is the root ingestion and query core.
type Faultline struct {
	config  Config
	store   store.Store
	queue   queue.Queue
	cache   cache.Cache
	gateway *ingest.Gateway
	events  *repository.Repository[*event.Event]
	stacks  *repository.Repository[*stack.Stack]
	metrics *observability.Metrics
	tracer  *observability.Tracer
	logger  *slog.Logger
}

// New creates a new Faultline with the given options. A store and a queue
// are required; everything else has working defaults.
func New(opts ...Option) (*Faultline, error) {
	f := &Faultline{
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	if f.store == nil {
		return nil, ErrNoStore
	}
	if f.queue == nil {
		return nil, ErrNoQueue
	}
	f.wireServices()
	return f, nil
}

// wireServices initializes the internal services after options have been applied.
func (f *Faultline) wireServices() {
	projectOwner := func(ctx context.Context, projectID string) (string, error) {
		p, err := f.store.GetProject(ctx, projectID)
		if err != nil {
			return "", err
		}
		return p.OrganizationID, nil
	}
	stackOwner := func(ctx context.Context, stackID string) (string, error) {
		s, err := f.store.GetStack(ctx, stackID)
		if err != nil {
			return "", err
		}
		return s.OrganizationID, nil
	}

	f.events = repository.New(event.Backend(f.store),
		repository.WithStackRemover[*event.Event](event.Remover(f.store)),
		repository.WithProjectOwner[*event.Event](projectOwner),
		repository.WithStackOwner[*event.Event](stackOwner),
		repository.WithCache[*event.Event](f.cache, f.config.CacheTTL),
		repository.WithDefaultLimit[*event.Event](f.config.DefaultLimit),
		repository.WithMetrics[*event.Event](f.metrics),
		repository.WithLogger[*event.Event](f.logger),
	)

	f.stacks = repository.New(stack.Backend(f.store),
		repository.WithProjectOwner[*stack.Stack](projectOwner),
		repository.WithCache[*stack.Stack](f.cache, f.config.CacheTTL),
		repository.WithDefaultLimit[*stack.Stack](f.config.DefaultLimit),
		repository.WithLogger[*stack.Stack](f.logger),
	)

	gatewayOpts := []ingest.Option{
		ingest.WithMetrics(f.metrics),
		ingest.WithTracer(f.tracer),
		ingest.WithLogger(f.logger),
	}
	if f.config.SubmissionRateLimit > 0 {
		gatewayOpts = append(gatewayOpts, ingest.WithRateLimit(f.config.SubmissionRateLimit))
	}
	f.gateway = ingest.NewGateway(f.store, f.queue, gatewayOpts...)
}

// Submit accepts a raw event submission through the ingestion gateway.
func (f *Faultline) Submit(ctx context.Context, sub ingest.Submission) error {
	return f.gateway.Submit(ctx, sub)
}

// Ingest returns the ingestion gateway.
func (f *Faultline) Ingest() *ingest.Gateway {
	return f.gateway
}

// Events returns the ownership-scoped event repository.
func (f *Faultline) Events() *repository.Repository[*event.Event] {
	return f.events
}

// Stacks returns the ownership-scoped stack repository.
func (f *Faultline) Stacks() *repository.Repository[*stack.Stack] {
	return f.stacks
}

// Store returns the underlying store.
func (f *Faultline) Store() store.Store {
	return f.store
}

// Config returns the effective configuration.
func (f *Faultline) Config() Config {
	return f.config
}
