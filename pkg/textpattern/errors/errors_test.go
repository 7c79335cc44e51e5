package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown"},
		{KindParse, "parse"},
		{KindConsistency, "consistency"},
		{KindRange, "range"},
		{KindCapacity, "capacity"},
		{KindConversion, "conversion"},
		{KindEngine, "engine"},
		{KindConfiguration, "configuration"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind(%d).String() = %s, want %s", tt.kind, got, tt.expected)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"nil error", nil, KindUnknown},
		{"parse", Parse("format", "bad field specifier"), KindParse},
		{"consistency", FromSentinel("format", ErrMixedSpecifiers), KindConsistency},
		{"range", Range("format", "argument index out of range"), KindRange},
		{"capacity", FromSentinel("map", ErrMaxSize), KindCapacity},
		{"conversion", Conversion("format", "expected integer", errors.New("x")), KindConversion},
		{"engine", Engine("match", "regex failed", errors.New("timeout")), KindEngine},
		{"configuration", FromSentinel("match", ErrNoCallback), KindConfiguration},
		{"wrapped", fmt.Errorf("outer: %w", Parse("expand", "x")), KindParse},
		{"foreign", errors.New("unknown"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.expected {
				t.Errorf("KindOf() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestError_Message(t *testing.T) {
	t.Run("bare", func(t *testing.T) {
		err := Parse("format", "bad field specifier")
		expected := "format: bad field specifier"
		if got := err.Error(); got != expected {
			t.Errorf("Error() = %q, want %q", got, expected)
		}
	})

	t.Run("with context", func(t *testing.T) {
		err := Range("format", "argument index out of range").At(3).In("%5$s").Arg(4)
		expected := `format: argument index out of range (directive "%5$s", offset 3, argument 4)`
		if got := err.Error(); got != expected {
			t.Errorf("Error() = %q, want %q", got, expected)
		}
	})

	t.Run("with cause", func(t *testing.T) {
		err := Engine("match", "regular expression failed", errors.New("match timeout"))
		expected := "match: regular expression failed: match timeout"
		if got := err.Error(); got != expected {
			t.Errorf("Error() = %q, want %q", got, expected)
		}
	})
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Conversion("format", "expected integer", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestSentinels(t *testing.T) {
	sentinels := []error{ErrMaxSize, ErrMixedSpecifiers, ErrUnmatchedOpen, ErrUnmatchedClose, ErrNoCallback}
	for _, s := range sentinels {
		t.Run(s.Error(), func(t *testing.T) {
			err := FromSentinel("op", s).At(7)
			if !errors.Is(err, s) {
				t.Errorf("errors.Is(%v, %v) = false", err, s)
			}
			wrapped := fmt.Errorf("context: %w", err)
			if !errors.Is(wrapped, s) {
				t.Error("errors.Is should see through wrapping")
			}
		})
	}

	if errors.Is(FromSentinel("op", ErrUnmatchedOpen), ErrUnmatchedClose) {
		t.Error("distinct sentinels of the same kind must not match")
	}
}

func TestPredicates(t *testing.T) {
	if !IsCapacity(FromSentinel("format", ErrMaxSize)) {
		t.Error("IsCapacity should be true")
	}
	if IsCapacity(Parse("format", "x")) {
		t.Error("IsCapacity should be false for parse errors")
	}
	if !IsConsistency(FromSentinel("format", ErrMixedSpecifiers)) {
		t.Error("IsConsistency should be true")
	}
	if !IsEngine(Engine("match", "x", nil)) {
		t.Error("IsEngine should be true")
	}
	if !IsConfiguration(Configuration("match", "x")) {
		t.Error("IsConfiguration should be true")
	}
	if !IsConversion(Conversion("match", "x", nil)) {
		t.Error("IsConversion should be true")
	}
	if !IsRange(Range("format", "x")) {
		t.Error("IsRange should be true")
	}
	if !IsParse(Parse("expand", "x")) {
		t.Error("IsParse should be true")
	}
}
