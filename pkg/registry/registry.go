// Package registry provides a generic, thread-safe map keyed by identifier.
package registry

import (
	"cmp"
	"slices"
	"sync"
)

// Registry is a generic, thread-safe registry for managing any type of entry.
// Registering an existing key replaces its entry (last writer wins).
type Registry[K cmp.Ordered, V any] struct {
	entries map[K]V
	mu      sync.RWMutex
}

// New creates a new empty registry
func New[K cmp.Ordered, V any]() *Registry[K, V] {
	return &Registry[K, V]{
		entries: make(map[K]V),
	}
}

// Register adds or replaces the entry for key.
// It reports whether an existing entry was replaced.
func (r *Registry[K, V]) Register(key K, value V) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, replaced := r.entries[key]
	r.entries[key] = value
	return replaced
}

// Get returns the entry for key.
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[key]
	return v, ok
}

// Update applies fn to the entry for key while holding the write lock.
// It reports false and does nothing when key is not registered.
func (r *Registry[K, V]) Update(key K, fn func(V) V) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.entries[key]
	if !ok {
		return false
	}
	r.entries[key] = fn(v)
	return true
}

// IsRegistered checks if key is registered
func (r *Registry[K, V]) IsRegistered(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.entries[key]
	return exists
}

// ListRegistered returns all registered keys in ascending order.
func (r *Registry[K, V]) ListRegistered() []K {
	r.mu.RLock()
	keys := make([]K, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	r.mu.RUnlock()

	slices.Sort(keys)
	return keys
}

// Unregister removes key from the registry
func (r *Registry[K, V]) Unregister(key K) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[key]; exists {
		delete(r.entries, key)
		return true
	}
	return false
}

// Count returns the total number of registered entries
func (r *Registry[K, V]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
