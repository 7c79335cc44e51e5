package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	tperrors "github.com/randalmurphal/textpattern/pkg/textpattern/errors"
)

// MetricsRecorder records textpattern metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordOperation records one format, expand, match or map call.
	RecordOperation(ctx context.Context, op string, duration time.Duration, outputChars int, err error)

	// RecordRuleSet records a rule set store action and the number of rules involved.
	RecordRuleSet(ctx context.Context, action string, rules int, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	operations   metric.Int64Counter
	errors       metric.Int64Counter
	latency      metric.Float64Histogram
	outputChars  metric.Int64Histogram
	ruleSetOps   metric.Int64Counter
	ruleSetRules metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the default OTel metrics instance.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("textpattern")

	operations, err := meter.Int64Counter("textpattern.operations",
		metric.WithDescription("Number of textpattern operations"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter("textpattern.errors",
		metric.WithDescription("Number of failed operations by error kind"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("textpattern.latency_ms",
		metric.WithDescription("Operation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	outputChars, err := meter.Int64Histogram("textpattern.output_chars",
		metric.WithDescription("Characters produced per operation"),
		metric.WithUnit("{char}"),
	)
	if err != nil {
		return nil, err
	}

	ruleSetOps, err := meter.Int64Counter("textpattern.ruleset.operations",
		metric.WithDescription("Number of rule set store actions"),
	)
	if err != nil {
		return nil, err
	}

	ruleSetRules, err := meter.Int64Histogram("textpattern.ruleset.rules",
		metric.WithDescription("Rules per saved or loaded rule set"),
		metric.WithUnit("{rule}"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		operations:   operations,
		errors:       errs,
		latency:      latency,
		outputChars:  outputChars,
		ruleSetOps:   ruleSetOps,
		ruleSetRules: ruleSetRules,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
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

// RecordOperation records one operation.
func (m *otelMetrics) RecordOperation(ctx context.Context, op string, duration time.Duration, outputChars int, err error) {
	attrs := metric.WithAttributes(
		attribute.String("op", op),
		attribute.Bool("success", err == nil),
	)
	m.operations.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(duration.Microseconds())/1000, attrs)

	if err != nil {
		m.errors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("op", op),
			attribute.String("kind", tperrors.KindOf(err).String()),
		))
		return
	}
	m.outputChars.Record(ctx, int64(outputChars), metric.WithAttributes(attribute.String("op", op)))
}

// RecordRuleSet records a rule set store action.
func (m *otelMetrics) RecordRuleSet(ctx context.Context, action string, rules int, err error) {
	attrs := metric.WithAttributes(
		attribute.String("action", action),
		attribute.Bool("success", err == nil),
	)
	m.ruleSetOps.Add(ctx, 1, attrs)
	if err == nil && rules > 0 {
		m.ruleSetRules.Record(ctx, int64(rules), metric.WithAttributes(attribute.String("action", action)))
	}
}
