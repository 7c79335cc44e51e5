// Package ruleset stores named StrMap rule lists.
package ruleset

import (
	"errors"
	"time"

	"github.com/randalmurphal/textpattern/pkg/textpattern/strmap"
)

// RuleSet is a named, ordered rule list with its mapping options.
type RuleSet struct {
	Name   string
	Rules  []strmap.Rule
	NoCase bool

	// Limit caps replacements per Map call. Negative is unbounded.
	Limit int
}

// Options returns the strmap options the rule set was saved with.
func (rs RuleSet) Options() []strmap.Option {
	return []strmap.Option{strmap.WithNoCase(rs.NoCase), strmap.WithLimit(rs.Limit)}
}

// Store persists rule sets.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a rule set, replacing any set with the same name.
	Save(rs RuleSet) error

	// Load retrieves a rule set by name.
	// Returns ErrNotFound if it doesn't exist.
	Load(name string) (RuleSet, error)

	// List returns metadata for every rule set, ordered by name.
	// Returns an empty slice (not error) if the store is empty.
	List() ([]Info, error)

	// Delete removes a rule set.
	// Returns nil if it doesn't exist.
	Delete(name string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info describes a rule set without loading its rules.
type Info struct {
	Name    string
	Rules   int
	NoCase  bool
	Limit   int
	Updated time.Time
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a rule set doesn't exist.
	ErrNotFound = errors.New("rule set not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("rule set store closed")

	// ErrInvalidName indicates an empty rule set name.
	ErrInvalidName = errors.New("rule set name must not be empty")
)

// cloneRules copies rules so stored sets never alias caller slices.
func cloneRules(rules []strmap.Rule) []strmap.Rule {
	if rules == nil {
		return nil
	}
	out := make([]strmap.Rule, len(rules))
	copy(out, rules)
	return out
}
