/*
Package textpattern is a text-pattern engine: a printf-style formatter,
a brace pattern expander, a multi-mode string matcher and an ordered
rule mapper, tied together by an instrumented Engine.

# Overview

Each capability lives in its own package and can be used on its own:

  - format: %[n$][flags][width][.precision][length]conversion formatting
  - brace: "{a,b}" sub-pattern expansion
  - match: Exact, SubString, Glob, RegExp, Integer and Callback matching
  - strmap: ordered, first-match-wins string replacement
  - dispatch: switch-style selection of the first matching arm
  - ruleset: named rule lists kept in memory or in SQLite

Engine builds all of them from one config.Settings and wraps every call
with structured logging, OpenTelemetry metrics and spans.

# Quick Start

	eng, err := textpattern.New()
	if err != nil {
	    return err
	}
	defer eng.Close()

	out, err := eng.Format(ctx, "%-5s|%05.1f|%#x", "ab", 3.14159, 255)
	// out: "ab   |003.1|0xff"

	ok, err := eng.Match(ctx, match.MustMode(match.Glob, match.SubPattern),
	    "main.go", "*.{go,mod}", false)
	// ok: true

# Callbacks

Callback mode calls a function registered under a name:

	h := eng.RegisterCallback("len", func(_ match.Mode, text, pattern string, _ any) (bool, error) {
	    return len(text) == len(pattern), nil
	})
	defer eng.UnregisterCallback(h)

	ok, err := eng.Match(ctx, match.MustMode(match.Callback), "abc", "xyz", false,
	    textpattern.UsingCallback("len"))

A handle only removes the registration it was returned for. Registering
the same name again makes older handles stale.

# Rule Sets

Named rule sets are saved once and applied by name:

	err := eng.SaveRuleSet(ctx, ruleset.RuleSet{
	    Name:  "html",
	    Rules: []strmap.Rule{{Old: "&", New: "&amp;"}, {Old: "<", New: "&lt;"}},
	    Limit: strmap.Unlimited,
	})
	res, err := eng.MapRuleSet(ctx, "html", "a<b & c")
	// res.Text: "a&lt;b &amp; c"

Rule sets listed in the configuration file are saved when the engine is
created. Set ruleset.db to keep them in SQLite across runs.

# Error Handling

Every error is a *errors.Error from the textpattern errors package,
classified by Kind. Nothing retries internally and no operation returns
partial output alongside an error.

# Observability

Operations log at debug on success and warn on failure. Metrics and
tracing are enabled by the Metrics and Tracing settings, or by passing a
recorder with WithMetrics and a span manager with WithSpanManager.
*/
package textpattern
