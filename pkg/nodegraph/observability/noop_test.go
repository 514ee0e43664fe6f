package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics_RecordCompare(t *testing.T) {
	m := NoopMetrics{}

	t.Run("does not panic with valid args", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordCompare(context.Background(), true, 0, 100*time.Millisecond)
		})
	})

	t.Run("does not panic with diffs", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordCompare(context.Background(), false, 12, 0)
		})
	})

	t.Run("does not panic with nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordCompare(nil, true, 0, 0)
		})
	})
}

func TestNoopMetrics_RecordValidation(t *testing.T) {
	m := NoopMetrics{}

	assert.NotPanics(t, func() {
		m.RecordValidation(context.Background(), 2, 3)
		m.RecordValidation(context.Background(), 0, 0)
		m.RecordValidation(nil, 1, 0)
	})
}

func TestNoopMetrics_RecordSnapshot(t *testing.T) {
	m := NoopMetrics{}

	assert.NotPanics(t, func() {
		m.RecordSnapshot(context.Background(), "g1", 1024)
		m.RecordSnapshot(context.Background(), "", 0)
		m.RecordSnapshot(nil, "g1", -1)
	})
}

func TestNoopSpanManager_StartCompareSpan(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("returns same context", func(t *testing.T) {
		ctx := context.Background()
		newCtx, span := sm.StartCompareSpan(ctx, "a", "b")

		assert.Equal(t, ctx, newCtx, "Context should be unchanged")
		assert.NotNil(t, span, "Span should not be nil")
	})

	t.Run("span is valid noop span", func(t *testing.T) {
		_, span := sm.StartCompareSpan(context.Background(), "a", "b")
		assert.False(t, span.IsRecording())
	})

	t.Run("does not panic with empty args", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.StartCompareSpan(context.Background(), "", "")
		})
	})
}

func TestNoopSpanManager_StartValidateSpan(t *testing.T) {
	sm := NoopSpanManager{}

	ctx := context.Background()
	newCtx, span := sm.StartValidateSpan(ctx)

	assert.Equal(t, ctx, newCtx, "Context should be unchanged")
	assert.NotNil(t, span)
	assert.False(t, span.IsRecording())
}

func TestNoopSpanManager_EndSpanWithError(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("does not panic with nil span", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(nil, nil)
		})
	})

	t.Run("does not panic with error", func(t *testing.T) {
		_, span := sm.StartCompareSpan(context.Background(), "a", "b")
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(span, errors.New("test error"))
		})
	})
}

func TestNoopSpanManager_AddSpanEvent(t *testing.T) {
	sm := NoopSpanManager{}

	assert.NotPanics(t, func() {
		sm.AddSpanEvent(context.Background(), "test_event", attribute.String("key", "value"))
		sm.AddSpanEvent(context.Background(), "")
		sm.AddSpanEvent(nil, "test_event")
	})
}

func TestNoopImplementations_NoSideEffects(t *testing.T) {
	// Exercise both noops the way a Comparer would.
	metrics := NoopMetrics{}
	spans := NoopSpanManager{}

	ctx := context.Background()
	ctx, span := spans.StartCompareSpan(ctx, "subj", "ref")

	metrics.RecordCompare(ctx, false, 2, 5*time.Millisecond)
	spans.AddSpanEvent(ctx, "compare.complete", attribute.Int("diff_count", 2))
	spans.EndSpanWithError(span, nil)

	ctx, vspan := spans.StartValidateSpan(ctx)
	metrics.RecordValidation(ctx, 0, 1)
	spans.EndSpanWithError(vspan, nil)
}
