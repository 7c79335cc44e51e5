package match

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"mvdan.cc/sh/v3/pattern"

	"github.com/randalmurphal/textpattern/pkg/textpattern/brace"
	tperrors "github.com/randalmurphal/textpattern/pkg/textpattern/errors"
	"github.com/randalmurphal/textpattern/pkg/textpattern/numeric"
)

const op = "match"

// CallbackFunc decides a Callback-mode match. clientData is the value
// configured with WithClientData.
type CallbackFunc func(mode Mode, text, pattern string, clientData any) (bool, error)

// Comparer orders two strings; zero means equal. It replaces the default
// culture-aware comparison for Exact and SubString modes.
type Comparer func(a, b string) int

// Matcher decides whether text matches a pattern under a Mode.
//
// Create with NewMatcher() and configure with Option functions.
// Matcher is safe for concurrent use after construction, provided the
// configured callback and comparer are.
type Matcher struct {
	comparer     Comparer
	regexOptions regexp2.RegexOptions
	regexTimeout time.Duration
	culture      language.Tag
	callback     CallbackFunc
	clientData   any
	logger       *slog.Logger
}

// NewMatcher creates a new Matcher with the given options.
//
// Default configuration:
//   - Comparer: none (culture-aware collation)
//   - Culture: language.Und
//   - RegexOptions: regexp2.None
//   - RegexTimeout: none
//   - Callback: none (Callback mode fails)
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		regexOptions: regexp2.None,
		culture:      language.Und,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match reports whether text matches pattern under mode.
//
// noCase is the caller's case preference; the ForceCase and NoCase modifiers
// override it. With SubPattern set, pattern is brace-expanded and the result
// is true if any alternative matches.
func (m *Matcher) Match(mode Mode, text, pattern string, noCase bool) (bool, error) {
	if !mode.kind.Valid() {
		return false, tperrors.Configuration(op, fmt.Sprintf("unsupported match mode %q", mode.kind))
	}

	if mode.Has(SubPattern) {
		alts, err := brace.Expand(pattern, 0, mode.Has(EmptySubPattern))
		if err != nil {
			return false, err
		}
		if alts != nil {
			m.logger.Debug("sub-pattern expanded",
				slog.String("pattern", pattern),
				slog.Int("alternatives", len(alts)),
			)
			single := mode.Without(SubPattern, EmptySubPattern)
			for _, alt := range alts {
				ok, err := m.Match(single, text, alt, noCase)
				if err != nil {
					return false, err
				}
				if ok {
					return true, nil
				}
			}
			return false, nil
		}
	}

	return m.matchOne(mode, text, pattern, mode.foldCase(noCase))
}

func (m *Matcher) matchOne(mode Mode, text, pat string, fold bool) (bool, error) {
	switch mode.kind {
	case Exact:
		return m.equal(text, pat, fold), nil
	case SubString:
		return m.prefix(text, pat, fold), nil
	case Glob:
		return matchGlob(text, pat, fold)
	case RegExp:
		return m.matchRegexp(text, pat, fold)
	case Integer:
		return matchInteger(text, pat)
	case Callback:
		if m.callback == nil {
			return false, tperrors.FromSentinel(op, tperrors.ErrNoCallback)
		}
		return m.callback(mode, text, pat, m.clientData)
	default:
		return false, tperrors.Configuration(op, fmt.Sprintf("unsupported match mode %q", mode.kind))
	}
}

// equal compares two strings with the comparer or the culture's collation.
func (m *Matcher) equal(a, b string, fold bool) bool {
	if m.comparer != nil {
		return m.comparer(a, b) == 0
	}
	if a == b {
		return true
	}
	var opts []collate.Option
	if fold {
		opts = append(opts, collate.IgnoreCase)
	}
	// Collators keep scratch buffers and are not safe to share.
	return collate.New(m.culture, opts...).CompareString(a, b) == 0
}

// prefix compares the first len(pat) characters of text with pat.
func (m *Matcher) prefix(text, pat string, fold bool) bool {
	tr, pr := []rune(text), []rune(pat)
	if len(tr) < len(pr) {
		return false
	}
	return m.equal(string(tr[:len(pr)]), pat, fold)
}

func matchGlob(text, pat string, fold bool) (bool, error) {
	expr, err := pattern.Regexp(pat, pattern.EntireString)
	if err != nil {
		return false, tperrors.Wrap(tperrors.KindParse, op, "invalid glob pattern", err).In(pat)
	}
	if fold {
		expr = "(?i)" + expr
	}
	rx, err := regexp.Compile(expr)
	if err != nil {
		return false, tperrors.Wrap(tperrors.KindParse, op, "invalid glob pattern", err).In(pat)
	}
	return rx.MatchString(text), nil
}

func (m *Matcher) matchRegexp(text, pat string, fold bool) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, tperrors.Engine(op, "regular expression engine failed", fmt.Errorf("%v", r)).In(pat)
		}
	}()

	opts := m.regexOptions
	if fold {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(pat, opts)
	if err != nil {
		return false, tperrors.Engine(op, "invalid regular expression", err).In(pat)
	}
	if m.regexTimeout > 0 {
		re.MatchTimeout = m.regexTimeout
	}
	ok, err = re.MatchString(text)
	if err != nil {
		return false, tperrors.Engine(op, "regular expression match failed", err).In(pat)
	}
	return ok, nil
}

func matchInteger(text, pat string) (bool, error) {
	a, err := numeric.ParseInteger(text, 0)
	if err != nil {
		return false, tperrors.Conversion(op, fmt.Sprintf("expected integer but got %q", text), err)
	}
	b, err := numeric.ParseInteger(pat, 0)
	if err != nil {
		return false, tperrors.Conversion(op, fmt.Sprintf("expected integer but got %q", pat), err)
	}
	return a.Cmp(b) == 0, nil
}

// MatchAnyOrAll matches text against each pattern in order.
//
// With requireAll false it stops at the first match and returns true; with
// requireAll true it stops at the first mismatch and returns false. The first
// error stops the scan. An empty list yields requireAll.
func (m *Matcher) MatchAnyOrAll(mode Mode, text string, patterns []string, requireAll, noCase bool) (bool, error) {
	for _, p := range patterns {
		ok, err := m.Match(mode, text, p, noCase)
		if err != nil {
			return false, err
		}
		if ok != requireAll {
			return ok, nil
		}
	}
	return requireAll, nil
}

// MatchAny reports whether text matches at least one pattern.
func (m *Matcher) MatchAny(mode Mode, text string, patterns []string, noCase bool) (bool, error) {
	return m.MatchAnyOrAll(mode, text, patterns, false, noCase)
}

// MatchAll reports whether text matches every pattern.
func (m *Matcher) MatchAll(mode Mode, text string, patterns []string, noCase bool) (bool, error) {
	return m.MatchAnyOrAll(mode, text, patterns, true, noCase)
}

// defaultMatcher has no callback and no comparer.
var defaultMatcher = NewMatcher()

// Match reports whether text matches pattern using the default Matcher.
//
// Example:
//
//	ok, _ := match.Match(match.MustMode(match.Glob, match.SubPattern), "cat", "{dog,cat}", false)
//	// ok: true
func Match(mode Mode, text, pattern string, noCase bool) (bool, error) {
	return defaultMatcher.Match(mode, text, pattern, noCase)
}

// MatchAnyOrAll matches text against patterns using the default Matcher.
func MatchAnyOrAll(mode Mode, text string, patterns []string, requireAll, noCase bool) (bool, error) {
	return defaultMatcher.MatchAnyOrAll(mode, text, patterns, requireAll, noCase)
}
