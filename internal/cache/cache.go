// Package cache provides a small invalidatable key-value cache abstraction.
package cache

import "sync"

// Cache is the minimal contract used for hash-keyed result caching:
// lookups miss explicitly, writes replace, and invalidation is per key.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Put(key string, value V)
	Invalidate(key string)
}

// Memory is an in-process Cache implementation safe for concurrent use.
type Memory[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
}

// NewMemory creates an empty in-memory cache.
func NewMemory[V any]() *Memory[V] {
	return &Memory[V]{entries: make(map[string]V)}
}

// Get returns the cached value for key, if present.
func (m *Memory[V]) Get(key string) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

// Put stores value under key, replacing any previous entry.
func (m *Memory[V]) Put(key string, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
}

// Invalidate removes the entry for key, if any.
func (m *Memory[V]) Invalidate(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}
