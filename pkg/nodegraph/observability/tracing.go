package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the nodegraph tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("nodegraph")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartCompareSpan starts a span for a structural comparison.
	// Returns the context with span and the span itself.
	StartCompareSpan(ctx context.Context, subjectID, referenceID string) (context.Context, trace.Span)

	// StartValidateSpan starts a span for a workflow validation.
	StartValidateSpan(ctx context.Context) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartCompareSpan starts a span for a structural comparison.
func (m *otelSpanManager) StartCompareSpan(ctx context.Context, subjectID, referenceID string) (context.Context, trace.Span) {
	return StartCompareSpan(ctx, subjectID, referenceID)
}

// StartValidateSpan starts a span for a workflow validation.
func (m *otelSpanManager) StartValidateSpan(ctx context.Context) (context.Context, trace.Span) {
	return StartValidateSpan(ctx)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// Convenience functions that operate on the global tracer.
// These are useful for simple cases where you don't need the interface.

// StartCompareSpan starts a span for a structural comparison.
// Uses the global OTel tracer.
func StartCompareSpan(ctx context.Context, subjectID, referenceID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "nodegraph.compare",
		trace.WithAttributes(
			attribute.String("subject.id", subjectID),
			attribute.String("reference.id", referenceID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartValidateSpan starts a span for a workflow validation.
// Uses the global OTel tracer.
func StartValidateSpan(ctx context.Context) (context.Context, trace.Span) {
	return tracer.Start(ctx, "nodegraph.validate",
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
