package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer("textpattern")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartOperationSpan starts a span for one operation.
	StartOperationSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span)

	// StartRuleSetSpan starts a span for a rule set store action.
	StartRuleSetSpan(ctx context.Context, action, name string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// Configure the global tracer provider before use:
//
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

func (m *otelSpanManager) StartOperationSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return StartOperationSpan(ctx, op, attrs...)
}

func (m *otelSpanManager) StartRuleSetSpan(ctx context.Context, action, name string) (context.Context, trace.Span) {
	return StartRuleSetSpan(ctx, action, name)
}

func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// StartOperationSpan starts a span named textpattern.<op>.
// Uses the global OTel tracer.
func StartOperationSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, "textpattern."+op,
		trace.WithAttributes(append([]attribute.KeyValue{attribute.String("textpattern.op", op)}, attrs...)...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartRuleSetSpan starts a span for a rule set store action.
// Uses the global OTel tracer.
func StartRuleSetSpan(ctx context.Context, action, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "textpattern.ruleset."+action,
		trace.WithAttributes(
			attribute.String("ruleset.name", name),
		),
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
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
