package tts

import "sync"

// Registry manages speech engine instances.
type Registry struct {
	engines map[EngineProvider]Engine
	mu      sync.RWMutex
}

// NewRegistry creates a new engine registry.
func NewRegistry() *Registry {
	return &Registry{
		engines: make(map[EngineProvider]Engine),
	}
}

// Register adds an engine to the registry, replacing any previous
// registration under the same name.
func (r *Registry) Register(e Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.engines[e.Provider()] = e
}

// Get retrieves an engine by name.
func (r *Registry) Get(name EngineProvider) (Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.engines[name]
	return e, ok
}

// List returns the names of all registered engines.
func (r *Registry) List() []EngineProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]EngineProvider, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}

	return names
}

// Close closes all registered engines.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.engines {
		if err := e.Close(); err != nil {
			return err
		}
	}

	return nil
}
