// Package errors provides the error taxonomy shared by every textpattern operation.
//
// Errors are classified by Kind so callers can decide how to react:
//   - Parse: malformed directive or pattern (bad field specifier, unbalanced braces)
//   - Consistency: positional and sequential specifiers mixed in one format string
//   - Range: argument index or width/precision argument out of bounds
//   - Capacity: output would exceed the configured maximum size
//   - Conversion: argument cannot be read as the numeric type a directive needs
//   - Engine: the regular expression engine failed
//   - Configuration: no callback registered, invalid match mode
//
// Nothing in textpattern retries on error; the caller owns that decision.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind represents the class of a textpattern error.
type Kind int

const (
	// KindUnknown is reported for errors that did not originate in textpattern.
	KindUnknown Kind = iota

	// KindParse indicates a malformed format directive or pattern.
	KindParse

	// KindConsistency indicates positional and sequential specifiers were mixed.
	KindConsistency

	// KindRange indicates an argument index or argument-supplied bound was out of range.
	KindRange

	// KindCapacity indicates the output would exceed its maximum size.
	KindCapacity

	// KindConversion indicates an argument could not be converted to the required type.
	KindConversion

	// KindEngine indicates the regular expression engine failed.
	KindEngine

	// KindConfiguration indicates a missing callback or unsupported match mode.
	KindConfiguration
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindConsistency:
		return "consistency"
	case KindRange:
		return "range"
	case KindCapacity:
		return "capacity"
	case KindConversion:
		return "conversion"
	case KindEngine:
		return "engine"
	case KindConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

// NoArg marks an Error that is not tied to a particular argument.
const NoArg = -1

// Error is the concrete error returned by textpattern operations.
// It carries enough context to reproduce the failure from the inputs.
type Error struct {
	// Kind classifies the error.
	Kind Kind

	// Op names the operation that failed ("format", "expand", "match", "map").
	Op string

	// Message is the human readable description.
	Message string

	// Offset is the byte offset into the format string or pattern, or -1.
	Offset int

	// Directive is the offending directive text, if any.
	Directive string

	// ArgIndex is the 0-based argument index involved, or NoArg.
	ArgIndex int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)

	var details []string
	if e.Directive != "" {
		details = append(details, fmt.Sprintf("directive %q", e.Directive))
	}
	if e.Offset >= 0 {
		details = append(details, fmt.Sprintf("offset %d", e.Offset))
	}
	if e.ArgIndex >= 0 {
		details = append(details, fmt.Sprintf("argument %d", e.ArgIndex))
	}
	if len(details) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(details, ", "))
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel carried by this error.
// This lets errors.Is(err, ErrMaxSize) work without wrapping the sentinel.
func (e *Error) Is(target error) bool {
	var s *sentinel
	if !errors.As(target, &s) {
		return false
	}
	return s.kind == e.Kind && s.msg == e.Message
}

// sentinel is a comparable marker matched by (*Error).Is.
type sentinel struct {
	kind Kind
	msg  string
}

func (s *sentinel) Error() string { return s.msg }

// Sentinel errors. Compare with errors.Is.
var (
	// ErrMaxSize indicates the output accumulator is full.
	ErrMaxSize error = &sentinel{KindCapacity, "max size exceeded"}

	// ErrMixedSpecifiers indicates positional and sequential directives were mixed.
	ErrMixedSpecifiers error = &sentinel{KindConsistency, `cannot mix "%" and "%n$" conversion specifiers`}

	// ErrUnmatchedOpen indicates a pattern ended inside a brace group.
	ErrUnmatchedOpen error = &sentinel{KindParse, "unmatched open-brace in pattern"}

	// ErrUnmatchedClose indicates a close-brace without a matching open-brace.
	ErrUnmatchedClose error = &sentinel{KindParse, "unmatched close-brace in pattern"}

	// ErrNoCallback indicates Callback mode was used with no callback configured.
	ErrNoCallback error = &sentinel{KindConfiguration, "invalid match callback"}
)

// New creates an Error with no offset, directive, or argument context.
func New(kind Kind, op, message string) *Error {
	return &Error{
		Kind:     kind,
		Op:       op,
		Message:  message,
		Offset:   -1,
		ArgIndex: NoArg,
	}
}

// Wrap creates an Error around an underlying cause.
func Wrap(kind Kind, op, message string, err error) *Error {
	e := New(kind, op, message)
	e.Err = err
	return e
}

// FromSentinel creates an Error whose message is that of a sentinel, so errors.Is matches.
func FromSentinel(op string, target error) *Error {
	var s *sentinel
	if !errors.As(target, &s) {
		return Wrap(KindUnknown, op, target.Error(), target)
	}
	return New(s.kind, op, s.msg)
}

// At returns e with its offset set.
func (e *Error) At(offset int) *Error {
	e.Offset = offset
	return e
}

// In returns e with its directive text set.
func (e *Error) In(directive string) *Error {
	e.Directive = directive
	return e
}

// Arg returns e with its argument index set.
func (e *Error) Arg(index int) *Error {
	e.ArgIndex = index
	return e
}

// Parse creates a parse error.
func Parse(op, message string) *Error {
	return New(KindParse, op, message)
}

// Consistency creates a consistency error.
func Consistency(op, message string) *Error {
	return New(KindConsistency, op, message)
}

// Range creates a range error.
func Range(op, message string) *Error {
	return New(KindRange, op, message)
}

// Capacity creates a capacity error.
func Capacity(op, message string) *Error {
	return New(KindCapacity, op, message)
}

// Conversion creates a conversion error wrapping the parse failure.
func Conversion(op, message string, err error) *Error {
	return Wrap(KindConversion, op, message, err)
}

// Engine creates an engine error wrapping the regex engine failure.
func Engine(op, message string, err error) *Error {
	return Wrap(KindEngine, op, message, err)
}

// Configuration creates a configuration error.
func Configuration(op, message string) *Error {
	return New(KindConfiguration, op, message)
}

// KindOf returns the kind of err, or KindUnknown if err is not a textpattern error.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsParse reports whether err is a parse error.
func IsParse(err error) bool { return KindOf(err) == KindParse }

// IsConsistency reports whether err is a consistency error.
func IsConsistency(err error) bool { return KindOf(err) == KindConsistency }

// IsRange reports whether err is a range error.
func IsRange(err error) bool { return KindOf(err) == KindRange }

// IsCapacity reports whether err is a capacity error.
func IsCapacity(err error) bool { return KindOf(err) == KindCapacity }

// IsConversion reports whether err is a conversion error.
func IsConversion(err error) bool { return KindOf(err) == KindConversion }

// IsEngine reports whether err is a regex engine error.
func IsEngine(err error) bool { return KindOf(err) == KindEngine }

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool { return KindOf(err) == KindConfiguration }
