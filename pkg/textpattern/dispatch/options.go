package dispatch

import (
	"log/slog"

	"github.com/randalmurphal/textpattern/pkg/textpattern/match"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithMatcher sets the matcher used for patterns. A nil matcher is ignored.
func WithMatcher(m *match.Matcher) Option {
	return func(d *Dispatcher) {
		if m != nil {
			d.matcher = m
		}
	}
}

// WithMode sets the match mode applied to every arm.
func WithMode(mode match.Mode) Option {
	return func(d *Dispatcher) {
		d.mode = mode
	}
}

// WithNoCase requests case-insensitive matching unless the mode forces case.
func WithNoCase(noCase bool) Option {
	return func(d *Dispatcher) {
		d.noCase = noCase
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}
