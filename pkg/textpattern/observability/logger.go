// Package observability provides structured logging, metrics and tracing
// for textpattern operations.
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

	tperrors "github.com/randalmurphal/textpattern/pkg/textpattern/errors"
)

// EnrichLogger adds operation context to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "format", "req-42")
//	enriched.Info("formatting") // includes op and request_id
func EnrichLogger(logger *slog.Logger, op, requestID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("op", op),
		slog.String("request_id", requestID),
	)
}

// LogOperationStart logs the start of an operation.
func LogOperationStart(logger *slog.Logger, op string, inputChars int) {
	if logger == nil {
		return
	}
	logger.Debug("operation starting",
		slog.String("op", op),
		slog.Int("input_chars", inputChars),
	)
}

// LogOperation logs successful completion of an operation.
func LogOperation(logger *slog.Logger, op string, durationMs float64, outputChars int) {
	if logger == nil {
		return
	}
	logger.Debug("operation completed",
		slog.String("op", op),
		slog.Float64("duration_ms", durationMs),
		slog.Int("output_chars", outputChars),
	)
}

// LogOperationError logs a failed operation with its error kind.
// Operation errors are caller input problems, so they log at warn.
func LogOperationError(logger *slog.Logger, op string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Warn("operation failed",
		slog.String("op", op),
		slog.String("kind", tperrors.KindOf(err).String()),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogRuleSet logs a rule set store action.
func LogRuleSet(logger *slog.Logger, action, name string, rules int) {
	if logger == nil {
		return
	}
	logger.Debug("rule set "+action,
		slog.String("name", name),
		slog.Int("rules", rules),
	)
}

// LogRuleSetError logs a rule set store failure.
func LogRuleSetError(logger *slog.Logger, action, name string, err error) {
	if logger == nil {
		return
	}
	logger.Error("rule set "+action+" failed",
		slog.String("name", name),
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
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
