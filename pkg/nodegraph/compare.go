package nodegraph

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/nodegraph/pkg/nodegraph/observability"
)

// Comparer runs structural comparisons with optional logging, metrics,
// and tracing. The plain (*Graph).StructuralDiff path has none of that
// overhead; use a Comparer where comparisons are an observable part of
// a service.
//
// A Comparer is safe for concurrent use: it holds no per-comparison
// state.
//
// Example:
//
//	comparer := nodegraph.NewComparer(
//	    nodegraph.WithCompareLogger(logger),
//	    nodegraph.WithCompareMetrics(true),
//	    nodegraph.WithCompareTracing(true),
//	)
//	diffs := comparer.Compare(ctx, subject, reference)
type Comparer struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// CompareOption configures a Comparer.
type CompareOption func(*Comparer)

// WithCompareLogger sets the logger for comparison outcomes.
// Nil (the default) disables logging.
func WithCompareLogger(logger *slog.Logger) CompareOption {
	return func(c *Comparer) {
		c.logger = logger
	}
}

// WithCompareMetrics enables OpenTelemetry metrics for comparisons.
// Uses the global OTel meter provider.
func WithCompareMetrics(enabled bool) CompareOption {
	return func(c *Comparer) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithCompareTracing enables OpenTelemetry tracing for comparisons.
// Uses the global OTel tracer provider.
func WithCompareTracing(enabled bool) CompareOption {
	return func(c *Comparer) {
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

// NewComparer creates a Comparer. All observability is disabled until
// switched on through options.
func NewComparer(opts ...CompareOption) *Comparer {
	c := &Comparer{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compare runs subject.StructuralDiff(reference) under the configured
// instrumentation. The diff semantics are identical to the plain call.
func (c *Comparer) Compare(ctx context.Context, subject, reference *Graph) []Diff {
	ctx, span := c.spans.StartCompareSpan(ctx, subject.ID(), reference.ID())
	observability.LogCompareStart(c.logger, subject.ID(), reference.ID())

	start := time.Now()
	diffs := subject.StructuralDiff(reference)
	elapsed := time.Since(start)

	c.metrics.RecordCompare(ctx, len(diffs) == 0, len(diffs), elapsed)
	observability.LogCompareComplete(c.logger, subject.ID(), reference.ID(),
		len(diffs), float64(elapsed.Milliseconds()))
	c.spans.AddSpanEvent(ctx, "compare.complete",
		attribute.Int("diff_count", len(diffs)),
		attribute.Bool("equivalent", len(diffs) == 0),
	)
	c.spans.EndSpanWithError(span, nil)

	return diffs
}

// Equivalent reports whether subject and reference are structurally
// equivalent, under the configured instrumentation.
func (c *Comparer) Equivalent(ctx context.Context, subject, reference *Graph) bool {
	return len(c.Compare(ctx, subject, reference)) == 0
}
