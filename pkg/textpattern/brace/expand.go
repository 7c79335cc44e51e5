package brace

import (
	"strings"

	tperrors "github.com/randalmurphal/textpattern/pkg/textpattern/errors"
)

const op = "expand"

// Expander expands brace groups in patterns.
//
// Create with NewExpander() and configure with Option functions.
// Expander is safe for concurrent use after construction.
type Expander struct {
	keepEmpty bool
}

// NewExpander creates a new Expander with the given options.
//
// Default configuration:
//   - KeepEmpty: false (empty alternatives are dropped)
func NewExpander(opts ...Option) *Expander {
	e := &Expander{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// group is one top-level {..} group and the literal text leading up to it.
type group struct {
	lead string
	alts []string
}

// Expand expands every top-level brace group in pattern, scanning from start.
// Text before start is kept as a literal prefix of every result.
//
// Returns nil and no error when no group is found. Returns a parse error when
// braces are unbalanced.
func (e *Expander) Expand(pattern string, start int) ([]string, error) {
	if start < 0 || start > len(pattern) {
		return nil, tperrors.Range(op, "start index out of range").At(start)
	}
	if !strings.ContainsAny(pattern[start:], "{}") {
		return nil, nil
	}

	var groups []group
	pos := start
	trailing := ""
	for {
		g, next, found, err := e.scanGroup(pattern, pos)
		if err != nil {
			return nil, err
		}
		if !found {
			trailing = g.lead
			break
		}
		groups = append(groups, g)
		pos = next
	}
	if len(groups) == 0 {
		return nil, nil
	}

	groups[0].lead = pattern[:start] + groups[0].lead
	return combine(groups, trailing), nil
}

// scanGroup scans from pos to the end of the next top-level group.
// When the remainder holds no group, found is false and g.lead is the
// remaining literal text.
func (e *Expander) scanGroup(pattern string, pos int) (g group, next int, found bool, err error) {
	var buf strings.Builder
	depth := 0
	open := -1

	for i := pos; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\':
			buf.WriteByte(c)
			if i+1 < len(pattern) {
				i++
				buf.WriteByte(pattern[i])
			}
		case c == '{':
			depth++
			if depth == 1 {
				open = i
				g.lead = buf.String()
				buf.Reset()
			} else {
				buf.WriteByte(c)
			}
		case c == ',' && depth == 1:
			g.alts = e.appendAlt(g.alts, buf.String())
			buf.Reset()
		case c == '}':
			depth--
			if depth < 0 {
				return group{}, 0, false, tperrors.FromSentinel(op, tperrors.ErrUnmatchedClose).At(i)
			}
			if depth == 0 {
				g.alts = e.appendAlt(g.alts, buf.String())
				if g.alts == nil {
					g.alts = []string{}
				}
				return g, i + 1, true, nil
			}
			buf.WriteByte(c)
		default:
			buf.WriteByte(c)
		}
	}

	if depth > 0 {
		return group{}, 0, false, tperrors.FromSentinel(op, tperrors.ErrUnmatchedOpen).At(open)
	}
	return group{lead: buf.String()}, len(pattern), false, nil
}

func (e *Expander) appendAlt(alts []string, alt string) []string {
	if alt == "" && !e.keepEmpty {
		return alts
	}
	return append(alts, alt)
}

// combine builds the Cartesian product of the groups, first group slowest.
func combine(groups []group, trailing string) []string {
	results := []string{""}
	for _, g := range groups {
		next := make([]string, 0, len(results)*len(g.alts))
		for _, prefix := range results {
			for _, alt := range g.alts {
				next = append(next, prefix+g.lead+alt)
			}
		}
		results = next
	}
	for i := range results {
		results[i] += trailing
	}
	return results
}

// defaultExpander drops empty alternatives.
var defaultExpander = NewExpander()

// keepEmptyExpander keeps empty alternatives.
var keepEmptyExpander = NewExpander(WithKeepEmpty(true))

// Expand expands brace groups in pattern from start.
//
// Example:
//
//	alts, err := brace.Expand("a{1,2}b{x,y}", 0, false)
//	// alts: [a1bx a1by a2bx a2by]
func Expand(pattern string, start int, keepEmpty bool) ([]string, error) {
	if keepEmpty {
		return keepEmptyExpander.Expand(pattern, start)
	}
	return defaultExpander.Expand(pattern, start)
}
