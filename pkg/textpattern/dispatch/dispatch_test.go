package dispatch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tperrors "github.com/randalmurphal/textpattern/pkg/textpattern/errors"
	"github.com/randalmurphal/textpattern/pkg/textpattern/match"
)

func arms(words ...string) []Arm {
	a, err := ParseArms(words)
	if err != nil {
		panic(err)
	}
	return a
}

func TestParseArms(t *testing.T) {
	got, err := ParseArms([]string{"a", "1", "b", "2"})
	require.NoError(t, err)
	assert.Equal(t, []Arm{{"a", "1"}, {"b", "2"}}, got)

	_, err = ParseArms([]string{"a", "1", "b"})
	assert.True(t, tperrors.IsParse(err))
}

func TestSelect(t *testing.T) {
	glob := match.MustMode(match.Glob)

	tests := []struct {
		name     string
		mode     match.Mode
		noCase   bool
		text     string
		arms     []Arm
		matched  bool
		arm      int
		bodyArm  int
		wantBody string
	}{
		{"exact first", match.MustMode(match.Exact), false, "b", arms("a", "A", "b", "B"), true, 1, 1, "B"},
		{"first wins", glob, false, "main.go", arms("*.go", "first", "main.*", "second"), true, 0, 0, "first"},
		{"fall through", glob, false, "main.c", arms("*.go", "golang", "*.c", "-", "*.h", "c"), true, 1, 2, "c"},
		{"chained fall through", glob, false, "x", arms("x", "-", "y", "-", "z", "body"), true, 0, 2, "body"},
		{"default", glob, false, "readme", arms("*.go", "golang", "default", "other"), true, 1, 1, "other"},
		{"default only last", match.MustMode(match.Exact), false, "x", arms("default", "d", "y", "why"), false, 0, 0, ""},
		{"default literal when matched", match.MustMode(match.Exact), false, "default", arms("default", "d", "y", "why"), true, 0, 0, "d"},
		{"no match", glob, false, "x", arms("a*", "A"), false, 0, 0, ""},
		{"empty arms", glob, false, "x", nil, false, 0, 0, ""},
		{"nocase", match.MustMode(match.Exact), true, "ABC", arms("abc", "yes"), true, 0, 0, "yes"},
		{"subpattern", match.MustMode(match.Exact, match.SubPattern), false, "cat", arms("{dog,cat}", "pet"), true, 0, 0, "pet"},
		{"regexp", match.MustMode(match.RegExp), false, "abc123", arms(`^\d+$`, "digits", `\d+$`, "tail"), true, 1, 1, "tail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(WithMode(tt.mode), WithNoCase(tt.noCase))
			res, err := d.Select(tt.text, tt.arms)
			require.NoError(t, err)
			assert.Equal(t, tt.matched, res.Matched)
			if tt.matched {
				assert.Equal(t, tt.arm, res.Arm)
				assert.Equal(t, tt.bodyArm, res.BodyArm)
				assert.Equal(t, tt.wantBody, res.Body)
			}
		})
	}
}

func TestSelect_TrailingFallthrough(t *testing.T) {
	_, err := Select("a", arms("a", "body", "b", "-"))
	require.Error(t, err)
	assert.True(t, tperrors.IsParse(err))
	assert.Contains(t, err.Error(), `no body specified for pattern "b"`)
}

func TestSelect_MatchErrors(t *testing.T) {
	_, err := Select("7", arms("x", "bad", "7", "seven"), WithMode(match.MustMode(match.Integer)))
	assert.True(t, tperrors.IsConversion(err))

	_, err = Select("a", arms("a", "body"), WithMode(match.MustMode(match.Callback)))
	assert.True(t, errors.Is(err, tperrors.ErrNoCallback))
}

func TestSelect_CustomMatcher(t *testing.T) {
	m := match.NewMatcher(match.WithCallback(func(_ match.Mode, text, pattern string, _ any) (bool, error) {
		return len(text) == len(pattern), nil
	}))
	res, err := Select("abc", arms("x", "one", "xyz", "three"),
		WithMatcher(m), WithMode(match.MustMode(match.Callback)))
	require.NoError(t, err)
	assert.Equal(t, "three", res.Body)
}
