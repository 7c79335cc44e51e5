package format

import (
	"strconv"
	"strings"
)

// Length selects the integer width a directive reads its argument as.
type Length int

const (
	// LengthDefault reads a 32-bit integer.
	LengthDefault Length = iota
	// LengthByte reads an 8-bit integer (y).
	LengthByte
	// LengthShort reads a 16-bit integer (h).
	LengthShort
	// LengthWide reads a 64-bit integer (l).
	LengthWide
	// LengthBig reads an integer of any size (ll).
	LengthBig
)

// bits returns the integer width, or 0 for LengthBig.
func (l Length) bits() int {
	switch l {
	case LengthByte:
		return 8
	case LengthShort:
		return 16
	case LengthWide:
		return 64
	case LengthBig:
		return 0
	default:
		return 32
	}
}

// Flag is a directive flag bit.
type Flag uint8

const (
	// FlagLeft left-justifies within the width (-).
	FlagLeft Flag = 1 << iota
	// FlagAlternate adds a radix prefix (#).
	FlagAlternate
	// FlagZero pads with zeros instead of spaces (0).
	FlagZero
	// FlagSpace prefixes non-negative signed numbers with a space ( ).
	FlagSpace
	// FlagPlus prefixes non-negative signed numbers with a plus (+).
	FlagPlus
)

// flagChars maps directive characters to flags, in mini-spec order.
var flagChars = []struct {
	c    byte
	flag Flag
}{
	{'-', FlagLeft},
	{'+', FlagPlus},
	{' ', FlagSpace},
	{'#', FlagAlternate},
	{'0', FlagZero},
}

func flagFor(c byte) (Flag, bool) {
	for _, fc := range flagChars {
		if fc.c == c {
			return fc.flag, true
		}
	}
	return 0, false
}

// Directive is one parsed %... conversion.
type Directive struct {
	// Positional is true for an XPG3 %n$ directive.
	Positional bool

	// ArgIndex is the 0-based index of the converted argument.
	ArgIndex int

	// Flags is the set of flags given.
	Flags Flag

	// Width is the minimum field width, or -1 when absent.
	Width int

	// Precision is the precision, or -1 when absent.
	Precision int

	// Length is the integer length modifier.
	Length Length

	// Conversion is the conversion character.
	Conversion rune

	// Text is the directive as written, including the leading %.
	Text string
}

// Has reports whether f is set.
func (d *Directive) Has(f Flag) bool {
	return d.Flags&f != 0
}

// floatSpec rebuilds the directive as a C-style mini-spec for the float
// formatter. Length modifiers are dropped.
func (d *Directive) floatSpec() string {
	var b strings.Builder
	b.WriteByte('%')
	for _, fc := range flagChars {
		if d.Has(fc.flag) {
			b.WriteByte(fc.c)
		}
	}
	if d.Width > 0 {
		b.WriteString(strconv.Itoa(d.Width))
	}
	if d.Precision >= 0 {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(d.Precision))
	}
	b.WriteRune(d.Conversion)
	return b.String()
}

