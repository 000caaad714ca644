// Package ingest implements the ingestion gateway: the producer side of
// the event pipeline.
//
// Submit validates and normalizes an inbound payload, resolves the owning
// project, guarantees exactly one gzip pass, and hands an immutable
// envelope to the queue. The two phases are strictly ordered: the envelope
// is built pure, then the single enqueue side effect runs, so a submission
// is either fully queued or not queued at all.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/faultline/id"
	"github.com/xraph/faultline/observability"
	"github.com/xraph/faultline/project"
	"github.com/xraph/faultline/queue"
	"github.com/xraph/faultline/ratelimit"
	"github.com/xraph/faultline/repository"
	"github.com/xraph/faultline/scope"
)

// ErrNoResolvableProject is returned when a submission names no project
// and the caller's default organization has none. Surfaced to HTTP
// callers as unauthorized: no event may be queued without an owner.
var ErrNoResolvableProject = errors.New("faultline: submission has no resolvable project")

// ErrRateLimited is returned when the owning project has exhausted its
// submission rate limit. The submission was not queued; clients may
// retry after backing off.
var ErrRateLimited = errors.New("faultline: submission rate limit exceeded")

// DefaultAPIVersion is assumed when a submission does not carry one.
const DefaultAPIVersion = 1

// Submission is a raw inbound event payload plus its transport metadata.
type Submission struct {
	// Data is the raw payload bytes as received.
	Data []byte

	// ProjectID is the explicit owning project; empty means resolve the
	// caller's default.
	ProjectID string

	// APIVersion is the client protocol version (default 1).
	APIVersion int

	// UserAgent identifies the submitting client.
	UserAgent string

	// MediaType and CharSet describe the payload content type.
	MediaType string
	CharSet   string

	// ContentEncoding is the declared transfer encoding; containing
	// "gzip" means Data is already compressed.
	ContentEncoding string
}

// Gateway accepts submissions and produces envelopes into the queue.
// Stateless per call; safe for concurrent use.
type Gateway struct {
	projects  project.Store
	queue     queue.Queue
	limiter   *ratelimit.Limiter
	rateLimit int
	metrics   *observability.Metrics
	tracer    *observability.Tracer
	logger    *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithMetrics sets the metric instruments.
func WithMetrics(m *observability.Metrics) Option {
	return func(g *Gateway) { g.metrics = m }
}

// WithRateLimit throttles submissions per owning project to the given
// sustained rate per second. A non-positive rate disables throttling.
func WithRateLimit(perSecond int) Option {
	return func(g *Gateway) {
		g.limiter = ratelimit.New()
		g.rateLimit = perSecond
	}
}

// WithTracer enables submission tracing.
func WithTracer(t *observability.Tracer) Option {
	return func(g *Gateway) { g.tracer = t }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) { g.logger = logger }
}

// NewGateway creates a Gateway over the given project store and queue.
func NewGateway(projects project.Store, q queue.Queue, opts ...Option) *Gateway {
	g := &Gateway{
		projects: projects,
		queue:    q,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Submit accepts a raw event submission.
//
// The critical path:
//  1. Count the submission (submitted strictly before queued).
//  2. Resolve the owning project, falling back to the first project of
//     the caller's default organization.
//  3. Enforce the project's submission rate limit, when one is set.
//  4. Normalize compression: exactly one gzip pass between client and
//     queue.
//  5. Build the immutable envelope, then perform the single enqueue.
//
// Submit returns only after the queue accepted the envelope; downstream
// processing never blocks the caller.
func (g *Gateway) Submit(ctx context.Context, sub Submission) error {
	g.metrics.SubmissionReceived()

	version := sub.APIVersion
	if version <= 0 {
		version = DefaultAPIVersion
	}

	var span trace.Span
	if g.tracer != nil {
		ctx, span = g.tracer.StartSubmitSpan(ctx, sub.ProjectID, version)
	}

	projectID, err := g.resolveProject(ctx, sub.ProjectID)
	if err != nil {
		g.metrics.SubmissionFailed("unresolvable_project")
		g.endSpan(span, false, 0, err)
		return err
	}

	if g.limiter != nil && !g.limiter.Allow(projectID, g.rateLimit) {
		g.metrics.SubmissionFailed("rate_limited")
		g.endSpan(span, false, 0, ErrRateLimited)
		return ErrRateLimited
	}

	data := sub.Data
	if !isGzipped(sub.ContentEncoding) {
		data, err = gzipCompress(data)
		if err != nil {
			g.metrics.SubmissionFailed("compress")
			g.endSpan(span, false, 0, err)
			return fmt.Errorf("faultline: compress payload: %w", err)
		}
	}

	env := &queue.Envelope{
		ID:         id.NewPostID().String(),
		MediaType:  sub.MediaType,
		CharSet:    sub.CharSet,
		ProjectID:  projectID,
		UserAgent:  sub.UserAgent,
		APIVersion: version,
		Data:       data,
	}

	if err := g.enqueue(ctx, env); err != nil {
		g.metrics.SubmissionFailed("queue")
		g.endSpan(span, false, len(env.Data), err)
		return err
	}
	g.metrics.SubmissionQueued()
	g.endSpan(span, true, len(env.Data), nil)

	g.logger.DebugContext(ctx, "submission queued",
		"post_id", env.ID,
		"project_id", env.ProjectID,
		"api_version", env.APIVersion,
		"bytes", len(env.Data),
	)

	return nil
}

func (g *Gateway) endSpan(span trace.Span, queued bool, payloadBytes int, err error) {
	if span == nil {
		return
	}
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	g.tracer.EndSubmitSpan(span, queued, payloadBytes, msg)
}

// resolveProject returns the explicit project id or the first project of
// the caller's default organization. No resolvable project is an
// authorization failure, never a silent drop.
func (g *Gateway) resolveProject(ctx context.Context, projectID string) (string, error) {
	if projectID != "" {
		return projectID, nil
	}

	caller, ok := scope.From(ctx)
	if !ok || caller.DefaultOrganizationID == "" {
		return "", ErrNoResolvableProject
	}

	p, err := g.projects.FirstProjectByOrganization(ctx, caller.DefaultOrganizationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrNoResolvableProject
		}
		return "", fmt.Errorf("faultline: resolve default project: %w", err)
	}

	return p.ID, nil
}

// enqueue performs the single broker side effect. Cancellation before
// acceptance delivers nothing; broker rejections surface retryable.
func (g *Gateway) enqueue(ctx context.Context, env *queue.Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := g.queue.Enqueue(ctx, env); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if errors.Is(err, queue.ErrUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", queue.ErrUnavailable, err)
	}
	return nil
}
