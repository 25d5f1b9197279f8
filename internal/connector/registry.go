package connector

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"payment-router/internal/core/domain"
)

var (
	ErrUnknownConnector   = errors.New("connector not registered")
	ErrFlowNotImplemented = errors.New("flow not implemented by connector")
)

type registryKey struct {
	connector string
	flow      domain.Flow
}

// Registry maps (connector, flow) to its integration. It is filled at startup
// and read concurrently afterwards.
type Registry struct {
	mu      sync.RWMutex
	entries map[registryKey]any
	names   map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[registryKey]any),
		names:   make(map[string]struct{}),
	}
}

// Register binds integ to (name, flow), replacing a previous binding.
func Register[Req any](r *Registry, name string, flow domain.Flow, integ Integration[Req]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[registryKey{connector: name, flow: flow}] = integ
	r.names[name] = struct{}{}
}

// Lookup resolves the integration for (name, flow).
func Lookup[Req any](r *Registry, name string, flow domain.Flow) (Integration[Req], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.names[name]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownConnector, name)
	}
	entry, ok := r.entries[registryKey{connector: name, flow: flow}]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrFlowNotImplemented, name, flow)
	}
	integ, ok := entry.(Integration[Req])
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s has request type %T", ErrFlowNotImplemented, name, flow, entry)
	}
	return integ, nil
}

// Has reports whether any flow is registered for name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.names[name]
	return ok
}

// Connectors lists registered connector names in sorted order.
func (r *Registry) Connectors() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.names))
	for n := range r.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
