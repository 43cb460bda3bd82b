package vision

import "sync"

// Factory constructs a default processor for unresolved lookups.
type Factory func() Processor

// Registry maps case-sensitive names to processor instances. Each
// registry is owned by whoever created it; there is no package-level
// registry, so sessions and tests never contaminate each other.
type Registry struct {
	mu         sync.RWMutex
	processors map[string]Processor
	newDefault Factory
}

// NewRegistry creates a registry whose unresolved lookups fall back to
// newDefault.
func NewRegistry(newDefault Factory) *Registry {
	return &Registry{
		processors: make(map[string]Processor),
		newDefault: newDefault,
	}
}

// Register stores a processor under name, silently replacing any
// existing entry.
func (r *Registry) Register(name string, p Processor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processors[name] = p
}

// Resolve returns the processor registered under name. An empty or
// unknown name yields a brand-new default instance. Because every
// fallback allocates fresh, a fallback processor starts with an empty
// cache each time; callers wanting a shared default should register one
// or hold their own.
func (r *Registry) Resolve(name string) Processor {
	r.mu.RLock()
	p, ok := r.processors[name]
	r.mu.RUnlock()
	if ok {
		return p
	}
	return r.newDefault()
}
