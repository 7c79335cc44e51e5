package dispatch

import (
	"fmt"
	"log/slog"

	tperrors "github.com/randalmurphal/textpattern/pkg/textpattern/errors"
	"github.com/randalmurphal/textpattern/pkg/textpattern/match"
)

const op = "dispatch"

const (
	// Fallthrough as a body means "use the body of the next arm".
	Fallthrough = "-"

	// Default as the pattern of the last arm matches any text.
	Default = "default"
)

// Arm is one pattern/body pair.
type Arm struct {
	Pattern string
	Body    string
}

// ParseArms pairs up a flat pattern,body,pattern,body... list.
func ParseArms(words []string) ([]Arm, error) {
	if len(words)%2 != 0 {
		return nil, tperrors.Parse(op, "extra switch pattern with no body").At(len(words) - 1)
	}
	arms := make([]Arm, 0, len(words)/2)
	for i := 0; i < len(words); i += 2 {
		arms = append(arms, Arm{Pattern: words[i], Body: words[i+1]})
	}
	return arms, nil
}

// Result reports which arm was selected.
type Result struct {
	// Matched is false when no arm matched.
	Matched bool

	// Arm is the index of the arm whose pattern matched.
	Arm int

	// BodyArm is the index of the arm whose body was used. It differs from
	// Arm when matched arms fall through.
	BodyArm int

	// Body is the selected body.
	Body string
}

// Dispatcher selects the first arm whose pattern matches a text.
//
// Dispatcher is safe for concurrent use after construction.
type Dispatcher struct {
	matcher *match.Matcher
	mode    match.Mode
	noCase  bool
	logger  *slog.Logger
}

// NewDispatcher creates a Dispatcher with the given options.
//
// Default configuration:
//   - Mode: Exact
//   - Matcher: match.NewMatcher()
//   - NoCase: false
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		matcher: match.NewMatcher(),
		mode:    match.MustMode(match.Exact),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Select returns the body for text.
//
// Arms are tried in order. The first matching arm wins; if its body is "-"
// the body of the next arm without "-" is used instead. A final arm whose
// pattern is "default" matches anything. The arm list is checked before
// any matching, so a trailing "-" body is an error even when an earlier arm
// would match.
func (d *Dispatcher) Select(text string, arms []Arm) (Result, error) {
	if n := len(arms); n > 0 && arms[n-1].Body == Fallthrough {
		return Result{}, tperrors.Parse(op,
			fmt.Sprintf("no body specified for pattern %q", arms[n-1].Pattern)).At(n - 1)
	}

	for i, arm := range arms {
		ok := i == len(arms)-1 && arm.Pattern == Default
		if !ok {
			var err error
			ok, err = d.matcher.Match(d.mode, text, arm.Pattern, d.noCase)
			if err != nil {
				d.logger.Debug("switch arm failed",
					slog.Int("arm", i),
					slog.String("error", err.Error()),
				)
				return Result{}, err
			}
		}
		if !ok {
			continue
		}

		body := i
		for arms[body].Body == Fallthrough {
			body++
		}
		d.logger.Debug("switch arm selected",
			slog.Int("arm", i),
			slog.Int("body_arm", body),
			slog.String("pattern", arm.Pattern),
		)
		return Result{Matched: true, Arm: i, BodyArm: body, Body: arms[body].Body}, nil
	}
	return Result{}, nil
}

// Select picks an arm with a Dispatcher built from opts.
func Select(text string, arms []Arm, opts ...Option) (Result, error) {
	return NewDispatcher(opts...).Select(text, arms)
}
