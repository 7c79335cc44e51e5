// Package buffer provides the bounded output accumulator used by format and strmap.
//
// Sizes are counted in characters (runes), matching how widths and precisions
// are expressed in format directives.
package buffer

import (
	"strings"
	"unicode/utf8"

	tperrors "github.com/randalmurphal/textpattern/pkg/textpattern/errors"
)

// Unlimited disables the size check.
const Unlimited = -1

// Bounded is a string builder with an enforced maximum size.
// Every append is checked before it is committed; a failed append leaves the
// buffer unchanged.
//
// Bounded is not safe for concurrent use.
type Bounded struct {
	b   strings.Builder
	n   int
	max int
	op  string
}

// New creates a Bounded accumulator holding at most max characters.
// A negative max means unlimited. op names the operation for error messages.
func New(op string, max int) *Bounded {
	return &Bounded{max: max, op: op}
}

// Len returns the number of characters written so far.
func (b *Bounded) Len() int {
	return b.n
}

// Remaining returns how many more characters fit, or -1 when unlimited.
func (b *Bounded) Remaining() int {
	if b.max < 0 {
		return Unlimited
	}
	return b.max - b.n
}

// Fits reports whether n more characters can be appended.
func (b *Bounded) Fits(n int) bool {
	return b.max < 0 || n <= b.max-b.n
}

// Check returns a capacity error if n more characters would not fit.
func (b *Bounded) Check(n int) error {
	if b.Fits(n) {
		return nil
	}
	return tperrors.FromSentinel(b.op, tperrors.ErrMaxSize)
}

// WriteString appends s.
func (b *Bounded) WriteString(s string) error {
	n := utf8.RuneCountInString(s)
	if err := b.Check(n); err != nil {
		return err
	}
	b.b.WriteString(s)
	b.n += n
	return nil
}

// WriteRune appends a single character.
func (b *Bounded) WriteRune(r rune) error {
	if err := b.Check(1); err != nil {
		return err
	}
	b.b.WriteRune(r)
	b.n++
	return nil
}

// Pad appends count copies of r. Non-positive counts are a no-op.
func (b *Bounded) Pad(r rune, count int) error {
	if count <= 0 {
		return nil
	}
	if err := b.Check(count); err != nil {
		return err
	}
	b.b.WriteString(strings.Repeat(string(r), count))
	b.n += count
	return nil
}

// String returns the accumulated text.
func (b *Bounded) String() string {
	return b.b.String()
}
