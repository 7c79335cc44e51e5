package benchmarks

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/randalmurphal/textpattern/pkg/textpattern/ruleset"
	"github.com/randalmurphal/textpattern/pkg/textpattern/strmap"
)

var htmlRules = []strmap.Rule{
	{Old: "&", New: "&amp;"},
	{Old: "<", New: "&lt;"},
	{Old: ">", New: "&gt;"},
	{Old: `"`, New: "&quot;"},
}

// BenchmarkMap_HTML escapes a 4 KiB document.
func BenchmarkMap_HTML(b *testing.B) {
	text := strings.Repeat(`<a href="x">1 & 2</a>`, 200)
	m := strmap.NewMapper()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Map(text, htmlRules)
	}
}

// BenchmarkMap_NoCase maps with rune-wise case folding.
func BenchmarkMap_NoCase(b *testing.B) {
	text := strings.Repeat("Hello World ", 200)
	rules := []strmap.Rule{{Old: "hello", New: "bye"}, {Old: "WORLD", New: "moon"}}
	m := strmap.NewMapper(strmap.WithNoCase(true))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Map(text, rules)
	}
}

// BenchmarkMap_ManyRules maps with 100 rules, most of which never match.
func BenchmarkMap_ManyRules(b *testing.B) {
	rules := make([]strmap.Rule, 0, 100)
	for i := 0; i < 100; i++ {
		rules = append(rules, strmap.Rule{Old: fmt.Sprintf("key%03d", i), New: "v"})
	}
	text := strings.Repeat("key099 ", 100)
	m := strmap.NewMapper()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Map(text, rules)
	}
}

// BenchmarkEngine_MapRuleSet loads a stored rule set and maps with it.
func BenchmarkEngine_MapRuleSet(b *testing.B) {
	eng := mustEngine(b)
	ctx := context.Background()
	if err := eng.SaveRuleSet(ctx, ruleset.RuleSet{Name: "html", Rules: htmlRules, Limit: strmap.Unlimited}); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = eng.MapRuleSet(ctx, "html", `<p class="x">a & b</p>`)
	}
}

// BenchmarkMemoryStore_Save measures in-memory rule set save.
func BenchmarkMemoryStore_Save(b *testing.B) {
	store := ruleset.NewMemoryStore()
	rs := ruleset.RuleSet{Name: "html", Rules: htmlRules}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Save(rs)
	}
}

// BenchmarkSQLiteStore_Save measures SQLite rule set save.
func BenchmarkSQLiteStore_Save(b *testing.B) {
	store := createSQLiteStore(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Save(ruleset.RuleSet{Name: fmt.Sprintf("set-%d", i%100), Rules: htmlRules})
	}
}

// BenchmarkSQLiteStore_Load measures SQLite rule set load.
func BenchmarkSQLiteStore_Load(b *testing.B) {
	store := createSQLiteStore(b)
	if err := store.Save(ruleset.RuleSet{Name: "html", Rules: htmlRules}); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Load("html")
	}
}

func createSQLiteStore(b *testing.B) *ruleset.SQLiteStore {
	b.Helper()
	store, err := ruleset.NewSQLiteStore(filepath.Join(b.TempDir(), "bench.db"))
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = store.Close() })
	return store
}
