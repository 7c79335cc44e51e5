package ruleset_test

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/textpattern/pkg/textpattern/ruleset"
	"github.com/randalmurphal/textpattern/pkg/textpattern/strmap"
)

func TestSQLiteStore_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rules.db")

	store1, err := ruleset.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store1.Save(htmlSet()))
	require.NoError(t, store1.Close())

	store2, err := ruleset.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store2.Close()

	loaded, err := store2.Load("html")
	require.NoError(t, err)
	assert.Equal(t, htmlSet(), loaded)
}

func TestSQLiteStore_InvalidPath(t *testing.T) {
	_, err := ruleset.NewSQLiteStore("/nonexistent/path/rules.db")
	assert.Error(t, err)
}

func TestSQLiteStore_CloseIdempotent(t *testing.T) {
	store, err := ruleset.NewSQLiteStore(":memory:")
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_Concurrent(t *testing.T) {
	store, err := ruleset.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	const workers = 20
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			name := fmt.Sprintf("set-%02d", n)
			rs := ruleset.RuleSet{
				Name:  name,
				Rules: []strmap.Rule{{Old: name, New: "x"}},
				Limit: n,
			}
			assert.NoError(t, store.Save(rs))
			loaded, err := store.Load(name)
			assert.NoError(t, err)
			assert.Equal(t, rs, loaded)
		}(i)
	}
	wg.Wait()

	infos, err := store.List()
	require.NoError(t, err)
	assert.Len(t, infos, workers)
}

func TestSQLiteStore_UnicodeRules(t *testing.T) {
	store, err := ruleset.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	rs := ruleset.RuleSet{
		Name:  "umlauts",
		Rules: []strmap.Rule{{Old: "ä", New: "ae"}, {Old: "ß", New: "ss"}, {Old: "", New: "never"}},
		Limit: -1,
	}
	require.NoError(t, store.Save(rs))

	loaded, err := store.Load("umlauts")
	require.NoError(t, err)
	assert.Equal(t, rs, loaded)
}
