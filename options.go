package faultline

import (
	"log/slog"
	"time"

	"github.com/xraph/faultline/cache"
	"github.com/xraph/faultline/observability"
	"github.com/xraph/faultline/queue"
	"github.com/xraph/faultline/store"
)

// Option configures a Faultline instance.
type Option func(*Faultline) error

// WithStore sets the persistence backend for the Faultline instance.
func WithStore(s store.Store) Option {
	return func(f *Faultline) error {
		f.store = s
		return nil
	}
}

// WithQueue sets the ingestion broker for the Faultline instance.
func WithQueue(q queue.Queue) Option {
	return func(f *Faultline) error {
		f.queue = q
		return nil
	}
}

// WithCache enables optional result caching for scoped reads.
func WithCache(c cache.Cache) Option {
	return func(f *Faultline) error {
		f.cache = c
		return nil
	}
}

// WithCacheTTL sets the default TTL for cached result pages.
func WithCacheTTL(d time.Duration) Option {
	return func(f *Faultline) error {
		f.config.CacheTTL = d
		return nil
	}
}

// WithDefaultLimit sets the page size used when a query does not specify one.
func WithDefaultLimit(n int) Option {
	return func(f *Faultline) error {
		f.config.DefaultLimit = n
		return nil
	}
}

// WithSubmissionRateLimit throttles submissions per owning project to
// the given sustained rate per second.
func WithSubmissionRateLimit(perSecond int) Option {
	return func(f *Faultline) error {
		f.config.SubmissionRateLimit = perSecond
		return nil
	}
}

// WithLogger sets the structured logger for the Faultline instance.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Faultline) error {
		f.logger = logger
		return nil
	}
}

// WithMetrics sets the metric instruments for the Faultline instance.
func WithMetrics(m *observability.Metrics) Option {
	return func(f *Faultline) error {
		f.metrics = m
		return nil
	}
}

// WithTracer enables OpenTelemetry tracing of submissions.
func WithTracer(t *observability.Tracer) Option {
	return func(f *Faultline) error {
		f.tracer = t
		return nil
	}
}
