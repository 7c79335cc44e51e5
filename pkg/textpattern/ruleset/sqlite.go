package ruleset

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/randalmurphal/textpattern/pkg/textpattern/strmap"
)

// SQLiteStore persists rule sets to SQLite.
// It is suitable for single-process use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite rule set store.
// The path should be a file path (e.g., "./rules.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A :memory: database exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS rule_sets (
			name TEXT PRIMARY KEY,
			no_case INTEGER NOT NULL,
			max_replacements INTEGER NOT NULL,
			updated TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS rules (
			set_name TEXT NOT NULL,
			position INTEGER NOT NULL,
			old_text TEXT NOT NULL,
			new_text TEXT NOT NULL,
			PRIMARY KEY (set_name, position)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(rs RuleSet) (err error) {
	if rs.Name == "" {
		return ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`
		INSERT INTO rule_sets (name, no_case, max_replacements, updated)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			no_case = excluded.no_case,
			max_replacements = excluded.max_replacements,
			updated = excluded.updated
	`, rs.Name, rs.NoCase, rs.Limit, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("save rule set: %w", err)
	}

	if _, err = tx.Exec(`DELETE FROM rules WHERE set_name = ?`, rs.Name); err != nil {
		return fmt.Errorf("clear rules: %w", err)
	}

	for i, r := range rs.Rules {
		if _, err = tx.Exec(`
			INSERT INTO rules (set_name, position, old_text, new_text) VALUES (?, ?, ?, ?)
		`, rs.Name, i, r.Old, r.New); err != nil {
			return fmt.Errorf("save rule %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load(name string) (RuleSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return RuleSet{}, ErrStoreClosed
	}

	rs := RuleSet{Name: name}
	err := s.db.QueryRow(`
		SELECT no_case, max_replacements FROM rule_sets WHERE name = ?
	`, name).Scan(&rs.NoCase, &rs.Limit)
	if errors.Is(err, sql.ErrNoRows) {
		return RuleSet{}, ErrNotFound
	}
	if err != nil {
		return RuleSet{}, fmt.Errorf("load rule set: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT old_text, new_text FROM rules WHERE set_name = ? ORDER BY position
	`, name)
	if err != nil {
		return RuleSet{}, fmt.Errorf("load rules: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r strmap.Rule
		if err := rows.Scan(&r.Old, &r.New); err != nil {
			return RuleSet{}, fmt.Errorf("scan rule: %w", err)
		}
		rs.Rules = append(rs.Rules, r)
	}
	if err := rows.Err(); err != nil {
		return RuleSet{}, fmt.Errorf("iterate rules: %w", err)
	}
	return rs, nil
}

// List implements Store.
func (s *SQLiteStore) List() ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT rs.name, rs.no_case, rs.max_replacements, rs.updated, COUNT(r.position)
		FROM rule_sets rs
		LEFT JOIN rules r ON r.set_name = rs.name
		GROUP BY rs.name
		ORDER BY rs.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list rule sets: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var info Info
		var updated string
		if err := rows.Scan(&info.Name, &info.NoCase, &info.Limit, &updated, &info.Rules); err != nil {
			return nil, fmt.Errorf("scan rule set info: %w", err)
		}
		info.Updated, _ = time.Parse(time.RFC3339Nano, updated)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rule sets: %w", err)
	}
	return infos, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM rules WHERE set_name = ?`, name); err != nil {
		return fmt.Errorf("delete rules: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM rule_sets WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete rule set: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
