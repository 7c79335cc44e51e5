package textpattern

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/textpattern/pkg/textpattern/brace"
	"github.com/randalmurphal/textpattern/pkg/textpattern/config"
	"github.com/randalmurphal/textpattern/pkg/textpattern/dispatch"
	tperrors "github.com/randalmurphal/textpattern/pkg/textpattern/errors"
	"github.com/randalmurphal/textpattern/pkg/textpattern/format"
	"github.com/randalmurphal/textpattern/pkg/textpattern/match"
	"github.com/randalmurphal/textpattern/pkg/textpattern/observability"
	"github.com/randalmurphal/textpattern/pkg/textpattern/registry"
	"github.com/randalmurphal/textpattern/pkg/textpattern/ruleset"
	"github.com/randalmurphal/textpattern/pkg/textpattern/strmap"
)

// Operation names used in logs, metrics and spans.
const (
	OpFormat   = "format"
	OpExpand   = "expand"
	OpMatch    = "match"
	OpMatchAny = "match_any"
	OpMatchAll = "match_all"
	OpSwitch   = "switch"
	OpMap      = "map"
)

// Rule set store actions used in logs, metrics and spans.
const (
	ActionSave   = "save"
	ActionLoad   = "load"
	ActionList   = "list"
	ActionDelete = "delete"
)

// Engine ties the textpattern components to one configuration and
// instruments every call with logging, metrics and tracing.
//
// Create with New() and configure with Option functions.
// Engine is safe for concurrent use; callbacks may be registered and
// unregistered while other goroutines match.
type Engine struct {
	settings  config.Settings
	formatter *format.Formatter
	expander  *brace.Expander
	matchOpts []match.Option
	callbacks *registry.Registry[string, match.CallbackFunc]
	store     ruleset.Store
	ownsStore bool
	logger    *slog.Logger
	metrics   observability.MetricsRecorder
	spans     observability.SpanManager
}

// New creates an Engine.
//
// Settings are validated first. Rule sets named in Settings.RuleSets are
// saved into the rule store before New returns.
//
// Example:
//
//	eng, err := textpattern.New(
//	    textpattern.WithSettings(settings),
//	    textpattern.WithLogger(logger),
//	)
//	if err != nil {
//	    return err
//	}
//	defer eng.Close()
func New(opts ...Option) (*Engine, error) {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := cfg.settings
	if err := s.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		settings:  s,
		callbacks: registry.New[string, match.CallbackFunc](),
		logger:    cfg.logger,
		metrics:   cfg.metrics,
		spans:     cfg.spans,
	}

	if e.metrics == nil {
		if s.Metrics {
			e.metrics = observability.NewMetricsRecorder()
		} else {
			e.metrics = observability.NoopMetrics{}
		}
	}
	if e.spans == nil {
		if s.Tracing {
			e.spans = observability.NewSpanManager()
		} else {
			e.spans = observability.NoopSpanManager{}
		}
	}

	formatOpts := []format.Option{
		format.WithMaxSize(s.MaxSize),
		format.WithLegacyOctal(s.LegacyOctal),
		format.WithCulture(s.Culture),
		format.WithLogger(e.logger),
	}
	if cfg.floats != nil {
		formatOpts = append(formatOpts, format.WithFloatFormatter(cfg.floats))
	}
	e.formatter = format.NewFormatter(formatOpts...)
	e.expander = brace.NewExpander(brace.WithKeepEmpty(s.KeepEmptySubPatterns))

	e.matchOpts = []match.Option{
		match.WithCulture(s.Culture),
		match.WithRegexOptions(s.RegexOptions),
		match.WithRegexTimeout(s.RegexTimeout),
		match.WithLogger(e.logger),
	}
	if cfg.comparer != nil {
		e.matchOpts = append(e.matchOpts, match.WithComparer(cfg.comparer))
	}

	e.store = cfg.store
	if e.store == nil {
		if s.RuleSetDB != "" {
			store, err := ruleset.NewSQLiteStore(s.RuleSetDB)
			if err != nil {
				return nil, tperrors.Wrap(tperrors.KindConfiguration, "engine",
					fmt.Sprintf("open rule set database %q", s.RuleSetDB), err)
			}
			e.store = store
		} else {
			e.store = ruleset.NewMemoryStore()
		}
		e.ownsStore = true
	}

	if err := e.seedRuleSets(); err != nil {
		_ = e.Close()
		return nil, err
	}
	return e, nil
}

// seedRuleSets saves the rule sets named in the settings.
func (e *Engine) seedRuleSets() error {
	names := make([]string, 0, len(e.settings.RuleSets))
	for name := range e.settings.RuleSets {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		rules, err := strmap.ParseRules(e.settings.RuleSets[name])
		if err != nil {
			return tperrors.Wrap(tperrors.KindConfiguration, "engine",
				fmt.Sprintf("rule set %q", name), err)
		}
		rs := ruleset.RuleSet{Name: name, Rules: rules, Limit: strmap.Unlimited}
		if err := e.store.Save(rs); err != nil {
			observability.LogRuleSetError(e.logger, ActionSave, name, err)
			return err
		}
		observability.LogRuleSet(e.logger, ActionSave, name, len(rules))
	}
	return nil
}

// Settings returns the settings the engine was built with.
func (e *Engine) Settings() config.Settings {
	return e.settings
}

// Close releases the rule store if the engine opened it.
func (e *Engine) Close() error {
	if !e.ownsStore || e.store == nil {
		return nil
	}
	return e.store.Close()
}

// run instruments one operation. fn returns the number of output characters.
func (e *Engine) run(ctx context.Context, op string, inputChars int, fn func(ctx context.Context) (int, error), attrs ...attribute.KeyValue) (err error) {
	elapsed := observability.TimedOperation()
	observability.LogOperationStart(e.logger, op, inputChars)

	ctx, span := e.spans.StartOperationSpan(ctx, op, attrs...)
	defer func() {
		e.spans.EndSpanWithError(span, err)
	}()

	var outputChars int
	outputChars, err = fn(ctx)

	durationMs := elapsed()
	e.metrics.RecordOperation(ctx, op, time.Duration(durationMs*float64(time.Millisecond)), outputChars, err)

	if err != nil {
		observability.LogOperationError(e.logger, op, err, durationMs)
		return err
	}
	observability.LogOperation(e.logger, op, durationMs, outputChars)
	return nil
}

// runRuleSet instruments one rule store action. fn returns the number of rules involved.
func (e *Engine) runRuleSet(ctx context.Context, action, name string, fn func() (int, error)) (err error) {
	ctx, span := e.spans.StartRuleSetSpan(ctx, action, name)
	defer func() {
		e.spans.EndSpanWithError(span, err)
	}()

	var rules int
	rules, err = fn()
	e.metrics.RecordRuleSet(ctx, action, rules, err)

	if err != nil {
		observability.LogRuleSetError(e.logger, action, name, err)
		return err
	}
	observability.LogRuleSet(e.logger, action, name, rules)
	return nil
}

// Format formats args according to a printf-style format string.
// See format.Formatter.Format for the directive syntax.
func (e *Engine) Format(ctx context.Context, fmtStr string, args ...any) (string, error) {
	var out string
	err := e.run(ctx, OpFormat, utf8.RuneCountInString(fmtStr), func(context.Context) (int, error) {
		var err error
		out, err = e.formatter.Format(fmtStr, args...)
		return utf8.RuneCountInString(out), err
	}, attribute.Int("textpattern.args", len(args)))
	if err != nil {
		return "", err
	}
	return out, nil
}

// Expand expands the top-level brace groups of pattern found at or after start.
// Returns nil and no error when pattern has no group.
func (e *Engine) Expand(ctx context.Context, pattern string, start int) ([]string, error) {
	var alts []string
	err := e.run(ctx, OpExpand, utf8.RuneCountInString(pattern), func(ctx context.Context) (int, error) {
		var err error
		alts, err = e.expander.Expand(pattern, start)
		if err != nil {
			return 0, err
		}
		e.spans.AddSpanEvent(ctx, "expanded", attribute.Int("textpattern.alternatives", len(alts)))
		n := 0
		for _, alt := range alts {
			n += utf8.RuneCountInString(alt)
		}
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return alts, nil
}

// matcher builds a Matcher for one call, attaching the named callback.
func (e *Engine) matcher(opts []MatchOption) (*match.Matcher, error) {
	var mc matchConfig
	for _, opt := range opts {
		opt(&mc)
	}
	if mc.callback == "" {
		return match.NewMatcher(e.matchOpts...), nil
	}

	cb, ok := e.callbacks.Get(mc.callback)
	if !ok {
		return nil, tperrors.Wrap(tperrors.KindConfiguration, OpMatch,
			fmt.Sprintf("no callback registered as %q", mc.callback), tperrors.ErrNoCallback)
	}
	matchOpts := append(slices.Clip(e.matchOpts), match.WithCallback(cb), match.WithClientData(mc.clientData))
	return match.NewMatcher(matchOpts...), nil
}

// Match reports whether text matches pattern under mode.
//
// Callback mode needs UsingCallback to name a registered callback.
func (e *Engine) Match(ctx context.Context, mode match.Mode, text, pattern string, noCase bool, opts ...MatchOption) (bool, error) {
	var ok bool
	err := e.run(ctx, OpMatch, utf8.RuneCountInString(text), func(context.Context) (int, error) {
		m, err := e.matcher(opts)
		if err != nil {
			return 0, err
		}
		ok, err = m.Match(mode, text, pattern, noCase)
		return 0, err
	}, attribute.String("textpattern.mode", mode.String()))
	return ok, err
}

// MatchAny reports whether text matches at least one of patterns.
func (e *Engine) MatchAny(ctx context.Context, mode match.Mode, text string, patterns []string, noCase bool, opts ...MatchOption) (bool, error) {
	return e.matchList(ctx, OpMatchAny, mode, text, patterns, false, noCase, opts)
}

// MatchAll reports whether text matches every one of patterns.
func (e *Engine) MatchAll(ctx context.Context, mode match.Mode, text string, patterns []string, noCase bool, opts ...MatchOption) (bool, error) {
	return e.matchList(ctx, OpMatchAll, mode, text, patterns, true, noCase, opts)
}

func (e *Engine) matchList(ctx context.Context, op string, mode match.Mode, text string, patterns []string, requireAll, noCase bool, opts []MatchOption) (bool, error) {
	var ok bool
	err := e.run(ctx, op, utf8.RuneCountInString(text), func(context.Context) (int, error) {
		m, err := e.matcher(opts)
		if err != nil {
			return 0, err
		}
		ok, err = m.MatchAnyOrAll(mode, text, patterns, requireAll, noCase)
		return 0, err
	},
		attribute.String("textpattern.mode", mode.String()),
		attribute.Int("textpattern.patterns", len(patterns)),
	)
	return ok, err
}

// Switch selects the body of the first arm whose pattern matches text.
// See dispatch.Dispatcher.Select for fall-through and default handling.
func (e *Engine) Switch(ctx context.Context, mode match.Mode, text string, arms []dispatch.Arm, noCase bool, opts ...MatchOption) (dispatch.Result, error) {
	var res dispatch.Result
	err := e.run(ctx, OpSwitch, utf8.RuneCountInString(text), func(context.Context) (int, error) {
		m, err := e.matcher(opts)
		if err != nil {
			return 0, err
		}
		d := dispatch.NewDispatcher(
			dispatch.WithMatcher(m),
			dispatch.WithMode(mode),
			dispatch.WithNoCase(noCase),
			dispatch.WithLogger(e.logger),
		)
		res, err = d.Select(text, arms)
		return utf8.RuneCountInString(res.Body), err
	},
		attribute.String("textpattern.mode", mode.String()),
		attribute.Int("textpattern.arms", len(arms)),
	)
	if err != nil {
		return dispatch.Result{}, err
	}
	return res, nil
}

// Map applies rules to text. opts are applied after the engine's size
// limit and logger, so they may override either.
func (e *Engine) Map(ctx context.Context, text string, rules []strmap.Rule, opts ...strmap.Option) (strmap.Result, error) {
	return e.mapText(ctx, text, rules, opts, attribute.Int("textpattern.rules", len(rules)))
}

// MapRuleSet applies the named rule set to text, using the case and
// replacement limit it was saved with.
func (e *Engine) MapRuleSet(ctx context.Context, name, text string) (strmap.Result, error) {
	rs, err := e.LoadRuleSet(ctx, name)
	if err != nil {
		if errors.Is(err, ruleset.ErrNotFound) {
			return strmap.Result{}, tperrors.Wrap(tperrors.KindConfiguration, OpMap,
				fmt.Sprintf("rule set %q", name), err)
		}
		return strmap.Result{}, err
	}
	return e.mapText(ctx, text, rs.Rules, rs.Options(),
		attribute.String("ruleset.name", name),
		attribute.Int("textpattern.rules", len(rs.Rules)),
	)
}

func (e *Engine) mapText(ctx context.Context, text string, rules []strmap.Rule, opts []strmap.Option, attrs ...attribute.KeyValue) (strmap.Result, error) {
	var res strmap.Result
	err := e.run(ctx, OpMap, utf8.RuneCountInString(text), func(ctx context.Context) (int, error) {
		mapOpts := append([]strmap.Option{
			strmap.WithMaxSize(e.settings.MaxSize),
			strmap.WithLogger(e.logger),
		}, opts...)
		var err error
		res, err = strmap.NewMapper(mapOpts...).Map(text, rules)
		if err != nil {
			return 0, err
		}
		e.spans.AddSpanEvent(ctx, "mapped", attribute.Int("textpattern.applied", res.Applied))
		return utf8.RuneCountInString(res.Text), nil
	}, attrs...)
	if err != nil {
		return strmap.Result{}, err
	}
	return res, nil
}

// SaveRuleSet stores rs, replacing any rule set with the same name.
func (e *Engine) SaveRuleSet(ctx context.Context, rs ruleset.RuleSet) error {
	return e.runRuleSet(ctx, ActionSave, rs.Name, func() (int, error) {
		return len(rs.Rules), e.store.Save(rs)
	})
}

// LoadRuleSet retrieves a rule set by name.
// Returns ruleset.ErrNotFound if it doesn't exist.
func (e *Engine) LoadRuleSet(ctx context.Context, name string) (ruleset.RuleSet, error) {
	var rs ruleset.RuleSet
	err := e.runRuleSet(ctx, ActionLoad, name, func() (int, error) {
		var err error
		rs, err = e.store.Load(name)
		return len(rs.Rules), err
	})
	if err != nil {
		return ruleset.RuleSet{}, err
	}
	return rs, nil
}

// ListRuleSets describes every stored rule set, ordered by name.
func (e *Engine) ListRuleSets(ctx context.Context) ([]ruleset.Info, error) {
	var infos []ruleset.Info
	err := e.runRuleSet(ctx, ActionList, "", func() (int, error) {
		var err error
		infos, err = e.store.List()
		n := 0
		for _, info := range infos {
			n += info.Rules
		}
		return n, err
	})
	if err != nil {
		return nil, err
	}
	return infos, nil
}

// DeleteRuleSet removes a rule set. Deleting a missing set is not an error.
func (e *Engine) DeleteRuleSet(ctx context.Context, name string) error {
	return e.runRuleSet(ctx, ActionDelete, name, func() (int, error) {
		return 0, e.store.Delete(name)
	})
}

// RegisterCallback makes cb available to Callback mode under name,
// replacing any callback already registered there. The returned handle
// unregisters exactly this registration.
//
// Example:
//
//	h := eng.RegisterCallback("len", func(_ match.Mode, text, pattern string, _ any) (bool, error) {
//	    return len(text) == len(pattern), nil
//	})
//	defer eng.UnregisterCallback(h)
func (e *Engine) RegisterCallback(name string, cb match.CallbackFunc) registry.Handle[string] {
	h := e.callbacks.Register(name, cb)
	e.logger.Debug("callback registered",
		slog.String("name", name),
		slog.String("handle", h.ID.String()),
	)
	return h
}

// UnregisterCallback removes the registration h refers to.
// Returns false if h is stale because the name was since re-registered or removed.
func (e *Engine) UnregisterCallback(h registry.Handle[string]) bool {
	removed := e.callbacks.Unregister(h)
	e.logger.Debug("callback unregistered",
		slog.String("name", h.Key),
		slog.Bool("removed", removed),
	)
	return removed
}

// Callbacks returns the names of the registered callbacks.
func (e *Engine) Callbacks() []string {
	names := e.callbacks.Keys()
	slices.Sort(names)
	return names
}
