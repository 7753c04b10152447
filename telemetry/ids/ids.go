// Package ids assigns and tracks the integer identities the rest of the
// telemetry agent uses to refer to DOM nodes without touching the live DOM
// tree itself (no data-* attributes, no expando properties on foreign pages).
package ids

import (
	"sync"

	"github.com/ozanturksever/claritygo/bridge"
)

// Index is a monotonic node identity. The zero value never denotes a real
// node; callers treat 0 as "no such node".
type Index int64

// Registry maps live DOM elements to their assigned Index and back. A single
// Registry is owned by one session.Session; it is safe for concurrent use,
// every method taking its RWMutex.
type Registry struct {
	mu       sync.RWMutex
	next     Index
	forward  map[bridge.DOMElement]Index
	backward map[Index]bridge.DOMElement
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		forward:  make(map[bridge.DOMElement]Index),
		backward: make(map[Index]bridge.DOMElement),
	}
}

// Assign returns the existing Index for el, allocating a new one if el has
// never been seen. Assign never returns 0.
func (r *Registry) Assign(el bridge.DOMElement) Index {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx, ok := r.forward[el]; ok {
		return idx
	}
	r.next++
	idx := r.next
	r.forward[el] = idx
	r.backward[idx] = el
	return idx
}

// Lookup returns the Index already assigned to el, or 0 if el is unknown.
func (r *Registry) Lookup(el bridge.DOMElement) Index {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.forward[el]
}

// Element returns the live element behind idx, or nil if idx has been
// released or was never assigned.
func (r *Registry) Element(idx Index) bridge.DOMElement {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.backward[idx]
}

// Release forgets el's identity. Indices are never reused, so a later
// re-insertion of an equal element (same pointer identity) gets a fresh one.
func (r *Registry) Release(el bridge.DOMElement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.forward[el]
	if !ok {
		return
	}
	delete(r.forward, el)
	delete(r.backward, idx)
}

// Len returns the number of currently tracked identities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.forward)
}
