package strmap

import "log/slog"

// Option configures a Mapper.
type Option func(*Mapper)

// WithNoCase makes rule matching case-insensitive.
func WithNoCase(noCase bool) Option {
	return func(m *Mapper) {
		m.noCase = noCase
	}
}

// WithLimit caps the number of replacements. A negative limit is unbounded.
//
// Example:
//
//	res, _ := strmap.NewMapper(strmap.WithLimit(1)).Map("aaa", []strmap.Rule{{Old: "a", New: "Z"}})
//	// res.Text: "Zaa"
func WithLimit(n int) Option {
	return func(m *Mapper) {
		m.limit = n
	}
}

// WithMaxSize sets the maximum output size in characters. A negative value
// disables the limit.
func WithMaxSize(n int) Option {
	return func(m *Mapper) {
		m.maxSize = n
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mapper) {
		if logger != nil {
			m.logger = logger
		}
	}
}
