package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records nodegraph metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCompare records a structural comparison with its outcome,
	// diff entry count, and duration.
	RecordCompare(ctx context.Context, equivalent bool, diffCount int, duration time.Duration)

	// RecordValidation records a workflow validation outcome.
	RecordValidation(ctx context.Context, errorCount, warningCount int)

	// RecordSnapshot records a graph snapshot save.
	RecordSnapshot(ctx context.Context, graphID string, sizeBytes int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	compareRuns    metric.Int64Counter
	compareLatency metric.Float64Histogram
	diffEntries    metric.Int64Histogram
	validateErrors metric.Int64Counter
	validateWarns  metric.Int64Counter
	snapshotSize   metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("nodegraph")

	compareRuns, err := meter.Int64Counter("nodegraph.compare.runs",
		metric.WithDescription("Number of structural comparisons"),
	)
	if err != nil {
		return nil, err
	}

	compareLatency, err := meter.Float64Histogram("nodegraph.compare.latency_ms",
		metric.WithDescription("Structural comparison latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	diffEntries, err := meter.Int64Histogram("nodegraph.diff.entries",
		metric.WithDescription("Diff entries produced per comparison"),
	)
	if err != nil {
		return nil, err
	}

	validateErrors, err := meter.Int64Counter("nodegraph.validate.errors",
		metric.WithDescription("Validation errors reported"),
	)
	if err != nil {
		return nil, err
	}

	validateWarns, err := meter.Int64Counter("nodegraph.validate.warnings",
		metric.WithDescription("Validation warnings reported"),
	)
	if err != nil {
		return nil, err
	}

	snapshotSize, err := meter.Int64Histogram("nodegraph.snapshot.size_bytes",
		metric.WithDescription("Graph snapshot size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		compareRuns:    compareRuns,
		compareLatency: compareLatency,
		diffEntries:    diffEntries,
		validateErrors: validateErrors,
		validateWarns:  validateWarns,
		snapshotSize:   snapshotSize,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordCompare records a structural comparison.
func (m *otelMetrics) RecordCompare(ctx context.Context, equivalent bool, diffCount int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.Bool("equivalent", equivalent),
	}
	m.compareRuns.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.compareLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	m.diffEntries.Record(ctx, int64(diffCount), metric.WithAttributes(attrs...))
}

// RecordValidation records a workflow validation outcome.
func (m *otelMetrics) RecordValidation(ctx context.Context, errorCount, warningCount int) {
	attrs := []attribute.KeyValue{
		attribute.Bool("valid", errorCount == 0),
	}
	if errorCount > 0 {
		m.validateErrors.Add(ctx, int64(errorCount), metric.WithAttributes(attrs...))
	}
	if warningCount > 0 {
		m.validateWarns.Add(ctx, int64(warningCount), metric.WithAttributes(attrs...))
	}
}

// RecordSnapshot records a graph snapshot save.
func (m *otelMetrics) RecordSnapshot(ctx context.Context, graphID string, sizeBytes int64) {
	attrs := []attribute.KeyValue{
		attribute.String("graph_id", graphID),
	}
	m.snapshotSize.Record(ctx, sizeBytes, metric.WithAttributes(attrs...))
}
