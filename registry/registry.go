// Package registry houses concrete implementations of the core.Registry
// register the current user is mirrored into. The interface itself lives in
// the core package to centralize domain contracts; add additional backends
// (Redis, etc.) in sub-packages without changing any calling code.
package registry

import (
	"context"
	"sync"
)

// InMemory is a volatile core.Registry storing values in a process local map.
// It is safe for concurrent access and best suited for tests, examples and
// single-process applications.
type InMemory struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewInMemory constructs an empty in-memory registry.
func NewInMemory() *InMemory {
	return &InMemory{values: make(map[string]any)}
}

// Set stores value under key.
func (r *InMemory) Set(_ context.Context, key string, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

// Get returns the value stored under key and whether it was ever set.
func (r *InMemory) Get(key string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok
}
