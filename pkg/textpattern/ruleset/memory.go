package ruleset

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory rule set store.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	sets   map[string]storedSet
	closed bool
}

type storedSet struct {
	set     RuleSet
	updated time.Time
}

// NewMemoryStore creates a new in-memory rule set store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sets: make(map[string]storedSet),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(rs RuleSet) error {
	if rs.Name == "" {
		return ErrInvalidName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	rs.Rules = cloneRules(rs.Rules)
	m.sets[rs.Name] = storedSet{set: rs, updated: time.Now().UTC()}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(name string) (RuleSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return RuleSet{}, ErrStoreClosed
	}

	s, ok := m.sets[name]
	if !ok {
		return RuleSet{}, ErrNotFound
	}
	rs := s.set
	rs.Rules = cloneRules(rs.Rules)
	return rs, nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.sets))
	for name, s := range m.sets {
		infos = append(infos, Info{
			Name:    name,
			Rules:   len(s.set.Rules),
			NoCase:  s.set.NoCase,
			Limit:   s.set.Limit,
			Updated: s.updated,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.sets, name)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.sets = nil
	return nil
}

// Len returns the number of stored rule sets.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sets)
}
