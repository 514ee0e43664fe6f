// Package observability provides production-grade observability for
// nodegraph: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds graph context to a logger.
// Returns a new logger with a graph_id field.
func EnrichLogger(logger *slog.Logger, graphID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("graph_id", graphID))
}

// LogCompareStart logs the start of a structural comparison.
func LogCompareStart(logger *slog.Logger, subjectID, referenceID string) {
	if logger == nil {
		return
	}
	logger.Debug("structural comparison starting",
		slog.String("subject_id", subjectID),
		slog.String("reference_id", referenceID),
	)
}

// LogCompareComplete logs the outcome of a structural comparison.
func LogCompareComplete(logger *slog.Logger, subjectID, referenceID string, diffCount int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("structural comparison completed",
		slog.String("subject_id", subjectID),
		slog.String("reference_id", referenceID),
		slog.Int("diff_count", diffCount),
		slog.Bool("equivalent", diffCount == 0),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogValidation logs the outcome of a workflow validation.
func LogValidation(logger *slog.Logger, valid bool, errorCount, warningCount int) {
	if logger == nil {
		return
	}
	logger.Info("workflow validated",
		slog.Bool("valid", valid),
		slog.Int("errors", errorCount),
		slog.Int("warnings", warningCount),
	)
}

// LogSnapshot logs a graph snapshot save.
func LogSnapshot(logger *slog.Logger, graphID string, revision int, sizeBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("graph snapshot saved",
		slog.String("graph_id", graphID),
		slog.Int("revision", revision),
		slog.Int("size_bytes", sizeBytes),
	)
}

// LogSnapshotError logs a snapshot failure (non-fatal to the graph).
func LogSnapshotError(logger *slog.Logger, graphID string, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("graph snapshot failed",
		slog.String("graph_id", graphID),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
