package rewrite

import "sync"

// Registry manages rewrite provider instances.
type Registry struct {
	providers map[Provider]Rewriter
	mu        sync.RWMutex
}

// NewRegistry creates a new provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[Provider]Rewriter),
	}
}

// Register adds a provider to the registry, replacing any previous
// registration under the same name.
func (r *Registry) Register(p Rewriter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers[p.Provider()] = p
}

// Get retrieves a provider by name.
func (r *Registry) Get(name Provider) (Rewriter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	return p, ok
}

// List returns the names of all registered providers.
func (r *Registry) List() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]Provider, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}

	return names
}

// Close closes all registered providers.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.providers {
		if err := p.Close(); err != nil {
			return err
		}
	}

	return nil
}
