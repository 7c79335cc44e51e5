package match

import (
	"fmt"
	"strings"

	tperrors "github.com/randalmurphal/textpattern/pkg/textpattern/errors"
)

// Kind is the base matching semantics. Exactly one kind applies per match.
type Kind int

const (
	// Exact compares the whole text with the pattern.
	Exact Kind = iota + 1

	// SubString compares the leading characters of the text with the pattern.
	SubString

	// Glob matches the text against a *, ?, [...] wildcard pattern.
	Glob

	// RegExp matches the text against a regular expression.
	RegExp

	// Integer parses text and pattern as integers and compares their values.
	Integer

	// Callback delegates the decision to a registered callback.
	Callback
)

var kindNames = map[Kind]string{
	Exact:     "exact",
	SubString: "substring",
	Glob:      "glob",
	RegExp:    "regexp",
	Integer:   "integer",
	Callback:  "callback",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Modifier is a set of independent bits that adjust a Kind.
type Modifier uint8

const (
	// NoCase makes the comparison case-insensitive unless ForceCase is also set.
	NoCase Modifier = 1 << iota

	// ForceCase makes the comparison case-sensitive regardless of the caller.
	ForceCase

	// SubPattern brace-expands the pattern and matches any alternative.
	SubPattern

	// EmptySubPattern keeps empty alternatives during expansion.
	EmptySubPattern
)

var modifierNames = []struct {
	mod  Modifier
	name string
}{
	{NoCase, "nocase"},
	{ForceCase, "forcecase"},
	{SubPattern, "subpattern"},
	{EmptySubPattern, "emptysubpattern"},
}

// Mode is a base Kind plus modifier bits. The zero Mode is invalid.
type Mode struct {
	kind Kind
	mods Modifier
}

// NewMode creates a Mode, rejecting unknown kinds.
func NewMode(kind Kind, mods ...Modifier) (Mode, error) {
	if !kind.Valid() {
		return Mode{}, tperrors.Configuration(op, fmt.Sprintf("unsupported match mode %d", int(kind)))
	}
	m := Mode{kind: kind}
	for _, mod := range mods {
		m.mods |= mod
	}
	return m, nil
}

// MustMode is like NewMode but panics on an invalid kind.
func MustMode(kind Kind, mods ...Modifier) Mode {
	m, err := NewMode(kind, mods...)
	if err != nil {
		panic(err)
	}
	return m
}

// Kind returns the base kind.
func (m Mode) Kind() Kind {
	return m.kind
}

// Has reports whether every bit of mod is set.
func (m Mode) Has(mod Modifier) bool {
	return m.mods&mod == mod
}

// With returns a copy of m with mods added.
func (m Mode) With(mods ...Modifier) Mode {
	for _, mod := range mods {
		m.mods |= mod
	}
	return m
}

// Without returns a copy of m with mods cleared.
func (m Mode) Without(mods ...Modifier) Mode {
	for _, mod := range mods {
		m.mods &^= mod
	}
	return m
}

// foldCase resolves the effective case-insensitivity.
// ForceCase wins over everything, NoCase wins over the caller's flag.
func (m Mode) foldCase(callerNoCase bool) bool {
	switch {
	case m.Has(ForceCase):
		return false
	case m.Has(NoCase):
		return true
	default:
		return callerNoCase
	}
}

// String renders the mode as space separated words, e.g. "glob nocase subpattern".
func (m Mode) String() string {
	words := []string{m.kind.String()}
	for _, mn := range modifierNames {
		if m.Has(mn.mod) {
			words = append(words, mn.name)
		}
	}
	return strings.Join(words, " ")
}

// ParseMode builds a Mode from words such as "glob", "nocase", "subpattern".
// Exactly one kind word is required. Words may also be given as a single
// space or comma separated string.
func ParseMode(words ...string) (Mode, error) {
	var m Mode
	for _, field := range words {
		for _, w := range strings.FieldsFunc(field, func(r rune) bool { return r == ' ' || r == ',' || r == '|' }) {
			w = strings.ToLower(w)
			if k, ok := kindByName(w); ok {
				if m.kind != 0 && m.kind != k {
					return Mode{}, tperrors.Configuration(op,
						fmt.Sprintf("conflicting match modes %q and %q", m.kind, k))
				}
				m.kind = k
				continue
			}
			mod, ok := modifierByName(w)
			if !ok {
				return Mode{}, tperrors.Configuration(op, fmt.Sprintf("unknown match mode word %q", w))
			}
			m.mods |= mod
		}
	}
	if m.kind == 0 {
		return Mode{}, tperrors.Configuration(op, "match mode has no base kind")
	}
	return m, nil
}

func kindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

func modifierByName(name string) (Modifier, bool) {
	for _, mn := range modifierNames {
		if mn.name == name {
			return mn.mod, true
		}
	}
	return 0, false
}

// Flags is the bit-set form of a Mode as used by callers that store modes
// as integers. One kind bit plus any modifier bits.
type Flags uint16

// Flag bits.
const (
	FlagExact Flags = 1 << iota
	FlagSubString
	FlagGlob
	FlagRegExp
	FlagInteger
	FlagCallback
	_
	_
	FlagNoCase
	FlagForceCase
	FlagSubPattern
	FlagEmptySubPattern
)

const (
	kindFlags     = FlagExact | FlagSubString | FlagGlob | FlagRegExp | FlagInteger | FlagCallback
	modifierFlags = FlagNoCase | FlagForceCase | FlagSubPattern | FlagEmptySubPattern
)

// ModeFromFlags validates a flag set and converts it into a Mode.
// Exactly one kind bit must be set and no unknown bit may be set.
func ModeFromFlags(f Flags) (Mode, error) {
	if f&^(kindFlags|modifierFlags) != 0 {
		return Mode{}, tperrors.Configuration(op, fmt.Sprintf("unknown match flags %#x", uint16(f&^(kindFlags|modifierFlags))))
	}

	var m Mode
	for k := Exact; k <= Callback; k++ {
		if f&(FlagExact<<(k-Exact)) == 0 {
			continue
		}
		if m.kind != 0 {
			return Mode{}, tperrors.Configuration(op,
				fmt.Sprintf("match flags %#x name more than one mode", uint16(f)))
		}
		m.kind = k
	}
	if m.kind == 0 {
		return Mode{}, tperrors.Configuration(op, "match flags name no mode")
	}

	for i, mn := range modifierNames {
		if f&(FlagNoCase<<i) != 0 {
			m.mods |= mn.mod
		}
	}
	return m, nil
}

// Flags converts m back into its bit-set form.
func (m Mode) Flags() Flags {
	if !m.kind.Valid() {
		return 0
	}
	f := FlagExact << (m.kind - Exact)
	for i, mn := range modifierNames {
		if m.Has(mn.mod) {
			f |= FlagNoCase << i
		}
	}
	return f
}
