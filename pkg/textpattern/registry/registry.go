package registry

import (
	"sync"

	"github.com/google/uuid"
)

// Handle identifies one registration. Unregistering with a handle removes the
// entry only if it is still the registration the handle was issued for.
type Handle[K comparable] struct {
	Key K
	ID  uuid.UUID
}

// Valid reports whether h was issued by Register.
func (h Handle[K]) Valid() bool {
	return h.ID != uuid.Nil
}

type entry[V any] struct {
	id    uuid.UUID
	value V
}

// Registry is a thread-safe registry for values indexed by key.
// It uses sync.RWMutex for read-heavy workloads.
type Registry[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
}

// New creates a new empty registry.
func New[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{
		entries: make(map[K]entry[V]),
	}
}

// Register adds or replaces the value for key and returns its handle.
// Replacing a value invalidates the previous handle.
func (r *Registry[K, V]) Register(key K, value V) Handle[K] {
	id := uuid.New()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = entry[V]{id: id, value: value}
	return Handle[K]{Key: key, ID: id}
}

// Unregister removes the registration h refers to.
// It returns false if the key was since replaced or removed.
func (r *Registry[K, V]) Unregister(h Handle[K]) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[h.Key]
	if !ok || e.id != h.ID {
		return false
	}
	delete(r.entries, h.Key)
	return true
}

// Get returns the value for a key and whether it exists.
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[key]
	return e.value, ok
}

// MustGet returns the value for a key, panicking if not found.
func (r *Registry[K, V]) MustGet(key K) V {
	v, ok := r.Get(key)
	if !ok {
		panic("registry: key not found")
	}
	return v
}

// Has returns true if the key exists in the registry.
func (r *Registry[K, V]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok
}

// Delete removes a key regardless of which registration holds it.
func (r *Registry[K, V]) Delete(key K) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
}

// Keys returns all keys in the registry.
// The order is not guaranteed.
func (r *Registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]K, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of entries in the registry.
func (r *Registry[K, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Range calls fn for each entry until fn returns false.
//
// Range iterates over a snapshot, so fn may call Register or Unregister.
func (r *Registry[K, V]) Range(fn func(K, V) bool) {
	r.mu.RLock()
	snapshot := make(map[K]V, len(r.entries))
	for k, e := range r.entries {
		snapshot[k] = e.value
	}
	r.mu.RUnlock()

	for k, v := range snapshot {
		if !fn(k, v) {
			return
		}
	}
}
