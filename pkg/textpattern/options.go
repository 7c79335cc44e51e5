package textpattern

import (
	"log/slog"

	"github.com/randalmurphal/textpattern/pkg/textpattern/config"
	"github.com/randalmurphal/textpattern/pkg/textpattern/format"
	"github.com/randalmurphal/textpattern/pkg/textpattern/match"
	"github.com/randalmurphal/textpattern/pkg/textpattern/observability"
	"github.com/randalmurphal/textpattern/pkg/textpattern/ruleset"
)

// engineConfig holds configuration gathered from Options before the
// components are built.
type engineConfig struct {
	settings config.Settings
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager
	store    ruleset.Store
	floats   format.FloatFormatter
	comparer match.Comparer
}

// defaultEngineConfig returns the configuration used when no options are given.
func defaultEngineConfig() engineConfig {
	return engineConfig{
		settings: config.DefaultSettings(),
		logger:   slog.Default(),
	}
}

// Option configures an Engine.
type Option func(*engineConfig)

// WithSettings replaces the engine settings.
// Default: config.DefaultSettings()
//
// Example:
//
//	settings, _ := config.Load("textpattern.yaml")
//	eng, err := textpattern.New(textpattern.WithSettings(settings))
func WithSettings(s config.Settings) Option {
	return func(c *engineConfig) {
		c.settings = s
	}
}

// WithLogger sets the logger for every component the engine builds.
// If logger is nil, the option is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(c *engineConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
//
// When not given, the engine uses observability.NewMetricsRecorder() if
// Settings.Metrics is true and observability.NoopMetrics{} otherwise.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *engineConfig) {
		c.metrics = m
	}
}

// WithSpanManager sets the span manager.
//
// When not given, the engine uses observability.NewSpanManager() if
// Settings.Tracing is true and observability.NoopSpanManager{} otherwise.
func WithSpanManager(s observability.SpanManager) Option {
	return func(c *engineConfig) {
		c.spans = s
	}
}

// WithRuleStore sets where named rule sets are kept.
//
// When not given, the engine opens a ruleset.SQLiteStore at Settings.RuleSetDB,
// or a ruleset.MemoryStore when that is empty. A store passed here is not
// closed by Engine.Close.
func WithRuleStore(store ruleset.Store) Option {
	return func(c *engineConfig) {
		c.store = store
	}
}

// WithFloatFormatter replaces the float renderer used by Format.
func WithFloatFormatter(ff format.FloatFormatter) Option {
	return func(c *engineConfig) {
		c.floats = ff
	}
}

// WithComparer sets the string comparer used by Exact and SubString matching.
func WithComparer(cmp match.Comparer) Option {
	return func(c *engineConfig) {
		c.comparer = cmp
	}
}

// matchConfig holds per-call match settings.
type matchConfig struct {
	callback   string
	clientData any
}

// MatchOption configures a single Match, MatchAny, MatchAll or Switch call.
type MatchOption func(*matchConfig)

// UsingCallback selects the registered callback that Callback mode calls.
//
// Example:
//
//	eng.RegisterCallback("len", sameLength)
//	ok, err := eng.Match(ctx, match.MustMode(match.Callback), "abc", "xyz", false,
//	    textpattern.UsingCallback("len"))
func UsingCallback(name string) MatchOption {
	return func(c *matchConfig) {
		c.callback = name
	}
}

// UsingClientData sets the value passed through to the callback.
func UsingClientData(data any) MatchOption {
	return func(c *matchConfig) {
		c.clientData = data
	}
}
