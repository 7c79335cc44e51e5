package format

import (
	"log/slog"

	"golang.org/x/text/language"
)

// Option configures a Formatter.
type Option func(*Formatter)

// WithMaxSize sets the maximum output size in characters.
// Output that would grow past the limit fails with a capacity error.
// A negative value disables the limit.
//
// Default: DefaultMaxSize
func WithMaxSize(n int) Option {
	return func(f *Formatter) {
		f.maxSize = n
	}
}

// WithLegacyOctal makes %#o prefix a single 0 instead of 0o.
func WithLegacyOctal(legacy bool) Option {
	return func(f *Formatter) {
		f.legacyOctal = legacy
	}
}

// WithCulture sets the language used to parse string arguments to floating
// point conversions. Cultures that use a decimal comma accept "1,5".
func WithCulture(tag language.Tag) Option {
	return func(f *Formatter) {
		f.culture = tag
	}
}

// WithFloatFormatter replaces the renderer for e E f g G. A nil formatter
// makes those conversions fail with a configuration error.
func WithFloatFormatter(ff FloatFormatter) Option {
	return func(f *Formatter) {
		f.floats = ff
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Formatter) {
		if logger != nil {
			f.logger = logger
		}
	}
}
