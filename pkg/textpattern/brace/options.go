package brace

// Option configures an Expander.
type Option func(*Expander)

// WithKeepEmpty controls whether empty alternatives such as the first one in
// "{,b}" are kept.
//
// Default: false (dropped)
//
// Example:
//
//	exp := NewExpander(WithKeepEmpty(true))
//	alts, _ := exp.Expand("x{,y}", 0)
//	// alts: [x xy]
func WithKeepEmpty(keep bool) Option {
	return func(e *Expander) {
		e.keepEmpty = keep
	}
}
