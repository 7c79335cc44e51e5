package strmap

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/randalmurphal/textpattern/pkg/textpattern/buffer"
	tperrors "github.com/randalmurphal/textpattern/pkg/textpattern/errors"
)

const op = "strmap"

// Unlimited disables the replacement quota.
const Unlimited = -1

// DefaultMaxSize is the default output limit in characters.
const DefaultMaxSize = 1<<31 - 1

// Rule replaces Old with New.
type Rule struct {
	Old string `json:"old" yaml:"old"`
	New string `json:"new" yaml:"new"`
}

// ParseRules pairs up a flat old,new,old,new... list.
func ParseRules(pairs []string) ([]Rule, error) {
	if len(pairs)%2 != 0 {
		return nil, tperrors.Parse(op, "char map list unbalanced").At(len(pairs) - 1)
	}
	rules := make([]Rule, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		rules = append(rules, Rule{Old: pairs[i], New: pairs[i+1]})
	}
	return rules, nil
}

// Result is the outcome of a Map call.
type Result struct {
	// Text is the mapped string.
	Text string

	// Applied counts replacements that emitted a rule's New value.
	Applied int
}

// Mapper applies ordered rule lists.
//
// Mapper is safe for concurrent use after construction.
type Mapper struct {
	noCase  bool
	limit   int
	maxSize int
	logger  *slog.Logger
}

// NewMapper creates a Mapper with the given options.
//
// Default configuration:
//   - NoCase: false
//   - Limit: Unlimited
//   - MaxSize: DefaultMaxSize
func NewMapper(opts ...Option) *Mapper {
	m := &Mapper{
		limit:   Unlimited,
		maxSize: DefaultMaxSize,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Map rewrites text in a single left-to-right pass.
//
// At each position the rules are tried in order and the first whose Old is a
// prefix of the remaining text wins, even if a later rule would match more.
// Once the replacement limit is reached, further matches are copied through
// unchanged but still consumed. Text with no matching rule is copied as is.
func (m *Mapper) Map(text string, rules []Rule) (Result, error) {
	if len(rules) == 0 {
		if !buffer.New(op, m.maxSize).Fits(utf8.RuneCountInString(text)) {
			return Result{}, tperrors.FromSentinel(op, tperrors.ErrMaxSize)
		}
		return Result{Text: text}, nil
	}

	out := buffer.New(op, m.maxSize)
	applied := 0
	lit := 0
	for pos := 0; pos < len(text); {
		rule, n := m.find(text[pos:], rules)
		if n == 0 {
			_, size := utf8.DecodeRuneInString(text[pos:])
			pos += size
			continue
		}

		if err := out.WriteString(text[lit:pos]); err != nil {
			return Result{}, m.fail(err, lit)
		}
		repl := text[pos : pos+n]
		if m.limit < 0 || applied < m.limit {
			repl = rule.New
			applied++
		}
		if err := out.WriteString(repl); err != nil {
			return Result{}, m.fail(err, pos)
		}
		pos += n
		lit = pos
	}
	if err := out.WriteString(text[lit:]); err != nil {
		return Result{}, m.fail(err, lit)
	}
	return Result{Text: out.String(), Applied: applied}, nil
}

// find returns the first rule matching at the start of s and the byte length
// of the matched span in s. A zero length means no rule matched.
func (m *Mapper) find(s string, rules []Rule) (Rule, int) {
	for _, r := range rules {
		if r.Old == "" {
			continue
		}
		if !m.noCase {
			if strings.HasPrefix(s, r.Old) {
				return r, len(r.Old)
			}
			continue
		}
		if n := prefixFold(s, r.Old); n > 0 {
			return r, n
		}
	}
	return Rule{}, 0
}

func (m *Mapper) fail(err error, offset int) error {
	if e, ok := err.(*tperrors.Error); ok && e.Offset < 0 {
		e.Offset = offset
	}
	m.logger.Debug("map failed",
		slog.Int("offset", offset),
		slog.String("error", err.Error()),
	)
	return err
}

// prefixFold reports the byte length of the prefix of s that equals prefix
// under simple case folding, or 0 if there is none.
func prefixFold(s, prefix string) int {
	i := 0
	for _, pr := range prefix {
		if i >= len(s) {
			return 0
		}
		sr, size := utf8.DecodeRuneInString(s[i:])
		if !runeEqualFold(sr, pr) {
			return 0
		}
		i += size
	}
	return i
}

func runeEqualFold(a, b rune) bool {
	if a == b {
		return true
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}

// defaultMapper uses the default configuration.
var defaultMapper = NewMapper()

// Map rewrites text using the default Mapper.
//
// Example:
//
//	res, _ := strmap.Map("abc", []strmap.Rule{{Old: "ab", New: "X"}, {Old: "a", New: "Y"}})
//	// res.Text: "Xc", res.Applied: 1
func Map(text string, rules []Rule) (Result, error) {
	return defaultMapper.Map(text, rules)
}
