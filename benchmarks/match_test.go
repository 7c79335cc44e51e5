package benchmarks

import (
	"strings"
	"testing"

	"github.com/randalmurphal/textpattern/pkg/textpattern/dispatch"
	"github.com/randalmurphal/textpattern/pkg/textpattern/match"
)

func benchMatch(b *testing.B, mode match.Mode, text, pattern string, noCase bool) {
	b.Helper()
	m := match.NewMatcher()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Match(mode, text, pattern, noCase)
	}
}

// BenchmarkMatch_Exact compares with collation.
func BenchmarkMatch_Exact(b *testing.B) {
	benchMatch(b, match.MustMode(match.Exact), "hello world", "hello world", false)
}

// BenchmarkMatch_ExactNoCase compares with case-insensitive collation.
func BenchmarkMatch_ExactNoCase(b *testing.B) {
	benchMatch(b, match.MustMode(match.Exact), "HELLO WORLD", "hello world", true)
}

// BenchmarkMatch_SubString compares a prefix.
func BenchmarkMatch_SubString(b *testing.B) {
	benchMatch(b, match.MustMode(match.SubString), strings.Repeat("abc", 100), "abcabc", false)
}

// BenchmarkMatch_Glob compiles and matches a glob.
func BenchmarkMatch_Glob(b *testing.B) {
	benchMatch(b, match.MustMode(match.Glob), "internal/pkg/main.go", "*/pkg/*.go", false)
}

// BenchmarkMatch_GlobSubPattern expands braces before globbing.
func BenchmarkMatch_GlobSubPattern(b *testing.B) {
	benchMatch(b, match.MustMode(match.Glob, match.SubPattern), "main.md", "*.{go,rs,c,md}", false)
}

// BenchmarkMatch_RegExp compiles and matches a regular expression.
func BenchmarkMatch_RegExp(b *testing.B) {
	benchMatch(b, match.MustMode(match.RegExp), "order-12345-x", `^order-\d+-[a-z]$`, false)
}

// BenchmarkMatch_Integer parses both sides.
func BenchmarkMatch_Integer(b *testing.B) {
	benchMatch(b, match.MustMode(match.Integer), "0x1f", "31", false)
}

// BenchmarkMatchAny_10 scans ten glob patterns with the match last.
func BenchmarkMatchAny_10(b *testing.B) {
	patterns := []string{"*.a", "*.b", "*.c", "*.d", "*.e", "*.f", "*.g", "*.h", "*.i", "*.go"}
	m := match.NewMatcher()
	mode := match.MustMode(match.Glob)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.MatchAny(mode, "main.go", patterns, false)
	}
}

// BenchmarkSelect measures switch dispatch with a fall-through.
func BenchmarkSelect(b *testing.B) {
	arms, err := dispatch.ParseArms([]string{"*.c", "-", "*.h", "C", "*.go", "Go", "default", "other"})
	if err != nil {
		b.Fatal(err)
	}
	d := dispatch.NewDispatcher(dispatch.WithMode(match.MustMode(match.Glob)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = d.Select("main.go", arms)
	}
}
