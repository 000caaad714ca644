package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/xraph/faultline"

// Tracer provides OpenTelemetry tracing for Faultline.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a new Faultline tracer.
func NewTracer() *Tracer {
	return &Tracer{
		tracer: otel.Tracer(tracerName),
	}
}

// StartSubmitSpan starts a new span for an ingestion submission.
func (t *Tracer) StartSubmitSpan(ctx context.Context, projectID string, apiVersion int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "faultline.submit",
		trace.WithAttributes(
			attribute.String("faultline.project_id", projectID),
			attribute.Int("faultline.api_version", apiVersion),
		),
	)
}

// EndSubmitSpan ends a submission span with result attributes.
func (t *Tracer) EndSubmitSpan(span trace.Span, queued bool, payloadBytes int, err string) {
	span.SetAttributes(
		attribute.Bool("faultline.queued", queued),
		attribute.Int("faultline.payload_bytes", payloadBytes),
	)
	if err != "" {
		span.SetAttributes(attribute.String("faultline.error", err))
	}
	span.End()
}
