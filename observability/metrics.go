package observability

import (
	gu "github.com/xraph/go-utils/metrics"
)

// Metrics holds metric instruments for Faultline, backed by any go-utils
// MetricFactory. The submitted counter is incremented when a submission
// enters the gateway; the queued counter only after the broker accepted
// the envelope, so submitted >= queued always holds.
type Metrics struct {
	PostsSubmittedTotal gu.Counter
	PostsQueuedTotal    gu.Counter
	PostsFailedTotal    gu.Counter
	EventsRemovedTotal  gu.Counter
	CacheHitsTotal      gu.Counter
	CacheMissesTotal    gu.Counter
}

// NewMetrics creates Faultline metric instruments using the supplied
// factory. Pass metrics.NewMetricsCollector() for standalone usage.
func NewMetrics(factory gu.MetricFactory) *Metrics {
	return &Metrics{
		PostsSubmittedTotal: factory.Counter("faultline_posts_submitted_total"),
		PostsQueuedTotal:    factory.Counter("faultline_posts_queued_total"),
		PostsFailedTotal:    factory.Counter("faultline_posts_failed_total"),
		EventsRemovedTotal:  factory.Counter("faultline_events_removed_total"),
		CacheHitsTotal:      factory.Counter("faultline_cache_hits_total"),
		CacheMissesTotal:    factory.Counter("faultline_cache_misses_total"),
	}
}

// SubmissionReceived records a submission entering the gateway.
func (m *Metrics) SubmissionReceived() {
	if m == nil {
		return
	}
	m.PostsSubmittedTotal.Inc()
}

// SubmissionQueued records a successful enqueue.
func (m *Metrics) SubmissionQueued() {
	if m == nil {
		return
	}
	m.PostsQueuedTotal.Inc()
}

// SubmissionFailed records a submission that never reached the queue,
// labeled by failure reason.
func (m *Metrics) SubmissionFailed(reason string) {
	if m == nil {
		return
	}
	m.PostsFailedTotal.WithLabels(map[string]string{"reason": reason}).Inc()
}

// CacheHit records a scoped read served from cache.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

// CacheMiss records a scoped read that fell through to the backend.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.CacheMissesTotal.Inc()
}

// EventsRemoved records documents removed by a stack-scoped bulk delete.
func (m *Metrics) EventsRemoved(n int64) {
	if m == nil {
		return
	}
	m.EventsRemovedTotal.Add(float64(n))
}
