package observability

import (
	"testing"

	gu "github.com/xraph/go-utils/metrics"
)

func TestNewMetricsInstruments(t *testing.T) {
	m := NewMetrics(gu.NewMetricsCollector("test"))

	if m.PostsSubmittedTotal == nil {
		t.Fatal("PostsSubmittedTotal should not be nil")
	}
	if m.PostsQueuedTotal == nil {
		t.Fatal("PostsQueuedTotal should not be nil")
	}
	if m.PostsFailedTotal == nil {
		t.Fatal("PostsFailedTotal should not be nil")
	}
	if m.EventsRemovedTotal == nil {
		t.Fatal("EventsRemovedTotal should not be nil")
	}
	if m.CacheHitsTotal == nil {
		t.Fatal("CacheHitsTotal should not be nil")
	}
	if m.CacheMissesTotal == nil {
		t.Fatal("CacheMissesTotal should not be nil")
	}
}

func TestRecorders(t *testing.T) {
	m := NewMetrics(gu.NewMetricsCollector("test"))

	m.SubmissionReceived()
	m.SubmissionQueued()
	m.SubmissionFailed("queue")
	m.SubmissionFailed("unresolvable_project")
	m.CacheHit()
	m.CacheMiss()
	m.EventsRemoved(3)
}

// All recorders must be nil-receiver safe: collaborators run without
// metrics unless instruments were injected.
func TestNilMetricsSafe(t *testing.T) {
	var m *Metrics

	m.SubmissionReceived()
	m.SubmissionQueued()
	m.SubmissionFailed("queue")
	m.CacheHit()
	m.CacheMiss()
	m.EventsRemoved(1)
}
