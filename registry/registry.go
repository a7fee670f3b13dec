// Package registry tracks the Biscuit indices a process currently holds,
// keyed by an opaque relation handle: a plain abstraction a caller
// constructs and owns explicitly, never a package-level global map or an
// init-time singleton.
package registry

import (
	"fmt"
	"sync"

	"github.com/CrystallineCore/biscuit/bicore"
)

// Registry holds one *bicore.Index per relation handle H. Callers choose
// what H is (a table name, a (schema, table) pair, a numeric relation id);
// the registry only requires it to be comparable.
type Registry[H comparable] struct {
	mu      sync.RWMutex
	entries map[H]*bicore.Index
}

// New returns an empty registry.
func New[H comparable]() *Registry[H] {
	return &Registry[H]{entries: make(map[H]*bicore.Index)}
}

// Register records ix under handle, replacing any prior entry for the same
// handle. It returns an error instead of silently overwriting when an
// entry is already present and replace is false, so a caller that expects
// to create a fresh relation notices a stale handle instead of leaking the
// old index.
func (r *Registry[H]) Register(handle H, ix *bicore.Index, replace bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[handle]; exists && !replace {
		return fmt.Errorf("registry: handle %v already registered", handle)
	}
	r.entries[handle] = ix
	return nil
}

// Lookup returns the index registered for handle, if any.
func (r *Registry[H]) Lookup(handle H) (*bicore.Index, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ix, ok := r.entries[handle]
	return ix, ok
}

// Teardown removes handle's entry, if present. The caller is responsible
// for dropping any other references to the returned index; Teardown itself
// does not mutate the index.
func (r *Registry[H]) Teardown(handle H) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, handle)
}

// Handles returns a snapshot of every handle currently registered, in no
// particular order.
func (r *Registry[H]) Handles() []H {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]H, 0, len(r.entries))
	for h := range r.entries {
		out = append(out, h)
	}
	return out
}
