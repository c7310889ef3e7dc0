package provider

import (
	"sort"
	"sync"
)

const DefaultPriority = 100

// Handle is a registered provider. Priority orders selection (lower
// wins); unset priorities default to DefaultPriority.
type Handle struct {
	Name     string
	Priority int

	Completer Completer
}

// Registry maps provider names to handles. The host mounts providers
// at startup; consumers take read-only snapshots per invocation.
type Registry struct {
	mu      sync.RWMutex
	handles map[string]Handle
}

func NewRegistry() *Registry {
	return &Registry{
		handles: map[string]Handle{},
	}
}

func (r *Registry) Register(name string, completer Completer, priority int) {
	if priority <= 0 {
		priority = DefaultPriority
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.handles[name] = Handle{
		Name:     name,
		Priority: priority,

		Completer: completer,
	}
}

func (r *Registry) Lookup(name string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handles[name]
	return h, ok
}

func (r *Registry) Snapshot() map[string]Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]Handle, len(r.handles))

	for name, h := range r.handles {
		result[name] = h
	}

	return result
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string

	for name := range r.handles {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
