package match

import (
	"log/slog"
	"time"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/language"
)

// Option configures a Matcher.
type Option func(*Matcher)

// WithComparer replaces culture-aware comparison for Exact and SubString.
// The comparer sees the strings as given; it decides case handling itself.
func WithComparer(c Comparer) Option {
	return func(m *Matcher) {
		m.comparer = c
	}
}

// WithCulture sets the language whose collation rules Exact and SubString use.
//
// Default: language.Und
func WithCulture(tag language.Tag) Option {
	return func(m *Matcher) {
		m.culture = tag
	}
}

// WithRegexOptions sets the regexp2 options for RegExp mode.
// IgnoreCase is added automatically for case-insensitive matches.
//
// Example:
//
//	m := NewMatcher(WithRegexOptions(regexp2.Multiline | regexp2.Singleline))
func WithRegexOptions(opts regexp2.RegexOptions) Option {
	return func(m *Matcher) {
		m.regexOptions = opts
	}
}

// WithRegexTimeout bounds how long a single regular expression match may run.
// A timeout is reported as an engine error. Zero means no limit.
func WithRegexTimeout(d time.Duration) Option {
	return func(m *Matcher) {
		m.regexTimeout = d
	}
}

// WithCallback sets the predicate used by Callback mode.
func WithCallback(cb CallbackFunc) Option {
	return func(m *Matcher) {
		m.callback = cb
	}
}

// WithClientData sets the value passed to the callback.
func WithClientData(data any) Option {
	return func(m *Matcher) {
		m.clientData = data
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}
