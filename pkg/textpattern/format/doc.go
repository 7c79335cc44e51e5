/*
Package format implements printf-style string formatting with XPG3
positional arguments, arbitrary-size integers and a bounded output size.

# Overview

A format string is literal text with embedded directives:

	%[n$][flags][width][.precision][length]conversion

	s, _ := format.Format("%s has %d items", "cart", 3)
	// s: "cart has 3 items"

%% produces a single percent sign and consumes no argument.

# Conversions

	s        string
	c        integer code point
	d i      signed decimal
	u        unsigned decimal
	o x X b  octal, hex, upper hex, binary
	e E f g G floating point

Flags are - (left justify), + and space (sign), # (radix prefix) and 0 (zero
pad). A * width or precision takes its value from the next argument; a
negative * width left-justifies.

# Length Modifiers

Integers are truncated to the width selected by the length modifier before
rendering: y (8 bits), h (16), none (32), l (64). ll disables truncation
so *big.Int values and long decimal strings print in full:

	format.Format("%hd", 70000)                          // "4464"
	format.Format("%lld", "123456789012345678901234567890") // as given

# Positional Arguments

%n$ selects argument n (1-based). A format string uses either positional
or sequential directives, never both:

	format.Format("%2$s %1$s", "world", "hello") // "hello world"
	format.Format("%1$s %s", "a")                 // consistency error

# Limits

Output is capped at the Formatter's max size, counted in characters. A
width that could never fit fails before any padding is produced. When any
directive fails, Format returns an empty string and a *errors.Error
carrying the kind, the directive text, its offset and the argument index.

# Thread Safety

Formatter is safe for concurrent use after construction.
*/
package format
