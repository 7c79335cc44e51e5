package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
type NoopMetrics struct{}

var _ MetricsRecorder = NoopMetrics{}

// RecordOperation does nothing.
func (NoopMetrics) RecordOperation(_ context.Context, _ string, _ time.Duration, _ int, _ error) {}

// RecordRuleSet does nothing.
func (NoopMetrics) RecordRuleSet(_ context.Context, _ string, _ int, _ error) {}

// NoopSpanManager is a SpanManager that does nothing.
type NoopSpanManager struct{}

var _ SpanManager = NoopSpanManager{}

var noopSpan = noop.Span{}

// StartOperationSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartOperationSpan(ctx context.Context, _ string, _ ...attribute.KeyValue) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// StartRuleSetSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartRuleSetSpan(ctx context.Context, _, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndSpanWithError does nothing.
func (NoopSpanManager) EndSpanWithError(_ trace.Span, _ error) {}

// AddSpanEvent does nothing.
func (NoopSpanManager) AddSpanEvent(_ context.Context, _ string, _ ...attribute.KeyValue) {}
