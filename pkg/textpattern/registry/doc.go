// Package registry provides a generic thread-safe registry whose
// registrations are identified by handles.
//
// Registry is designed for read-heavy workloads using sync.RWMutex. The
// textpattern Engine keeps its named match callbacks here.
//
// # Basic Usage
//
//	r := registry.New[string, match.CallbackFunc]()
//	h := r.Register("even-length", evenLength)
//
//	cb, ok := r.Get("even-length")
//
// # Handles
//
// Register returns a Handle carrying the key and a random UUID. Unregister
// removes the entry only while that registration is current, so a component
// that registered a callback cannot accidentally remove one that replaced it:
//
//	h1 := r.Register("cb", first)
//	h2 := r.Register("cb", second) // replaces first
//	r.Unregister(h1)               // false, second stays registered
//	r.Unregister(h2)               // true
//
// # Thread Safety
//
// All Registry methods are safe for concurrent use. Range iterates over a
// snapshot, allowing mutations during iteration.
package registry
