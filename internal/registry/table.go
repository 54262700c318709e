// Package registry implements the generic, insertion-ordered multimap
// backing a container's registration table (identifier to registrations).
// It has no knowledge of identifiers, providers, or containers: those
// concepts live one layer up, in the root package, and are plugged in here
// purely as type parameters.
package registry

import (
	"errors"
	"sync"
)

// ErrDisposed is returned by Append once a Table has been disposed.
var ErrDisposed = errors.New("registry: table is disposed")

// Table is a thread-safe, insertion-ordered multimap: each key maps to an
// ordered slice of values, and Append never deduplicates - registering the
// same key twice keeps both values, in the order they were added.
type Table[K comparable, V any] struct {
	mu       sync.RWMutex
	entries  map[K][]V
	disposed bool
}

// New creates an empty Table.
func New[K comparable, V any]() *Table[K, V] {
	return &Table[K, V]{entries: make(map[K][]V)}
}

// Append adds value under key. It fails only if the table has already been
// disposed.
func (t *Table[K, V]) Append(key K, value V) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed {
		return ErrDisposed
	}

	t.entries[key] = append(t.entries[key], value)
	return nil
}

// Get returns a defensive copy of the values registered under key, in
// insertion order, or nil if key has no registrations.
func (t *Table[K, V]) Get(key K) []V {
	t.mu.RLock()
	defer t.mu.RUnlock()

	list := t.entries[key]
	if len(list) == 0 {
		return nil
	}

	out := make([]V, len(list))
	copy(out, list)
	return out
}

// Has reports whether key has at least one registration.
func (t *Table[K, V]) Has(key K) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries[key]) > 0
}

// Keys returns every key that currently has at least one registration. The
// order is unspecified.
func (t *Table[K, V]) Keys() []K {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]K, 0, len(t.entries))
	for k, v := range t.entries {
		if len(v) > 0 {
			keys = append(keys, k)
		}
	}
	return keys
}

// RemoveAll deletes every value registered under key and returns the
// count removed.
func (t *Table[K, V]) RemoveAll(key K) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.entries[key])
	delete(t.entries, key)
	return n
}

// RemoveMatch removes every value under key for which match returns true,
// preserving the relative order of the values that remain, and returns the
// count removed.
func (t *Table[K, V]) RemoveMatch(key K, match func(V) bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	list, ok := t.entries[key]
	if !ok {
		return 0
	}

	kept := list[:0]
	removed := 0
	for _, v := range list {
		if match(v) {
			removed++
			continue
		}
		kept = append(kept, v)
	}

	if len(kept) == 0 {
		delete(t.entries, key)
	} else {
		t.entries[key] = kept
	}
	return removed
}

// Dispose marks the table disposed; subsequent Append calls fail with
// ErrDisposed. Existing entries are left in place so callers may still
// read them while unwinding.
func (t *Table[K, V]) Dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.disposed = true
}
