// Package registry maps step identifiers to their handlers. The set of step
// identifiers is open: hosts may add or override entries before the engine is
// first invoked.
package registry

import (
	"sort"
	"sync"

	"github.com/effective-digital/flowkit/pkg/ports"
)

// Registry manages the available step handlers. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]ports.StepHandler
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		handlers: make(map[string]ports.StepHandler),
	}
}

// Register adds a handler for a step identifier.
// If a handler for the same step exists, it is overwritten.
func (r *Registry) Register(step string, h ports.StepHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[step] = h
}

// Resolve looks up the handler for a step identifier.
// The second return is false when no handler is registered.
func (r *Registry) Resolve(step string) (ports.StepHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[step]
	return h, ok
}

// Steps returns the registered step identifiers in sorted order.
func (r *Registry) Steps() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	steps := make([]string, 0, len(r.handlers))
	for step := range r.handlers {
		steps = append(steps, step)
	}
	sort.Strings(steps)
	return steps
}
