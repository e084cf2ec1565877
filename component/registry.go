package component

import (
	"fmt"
	"sync"

	"github.com/kbukum/pipekit/logger"
)

// Registry manages component lifecycle with deterministic ordering.
// Components are initialized in registration order and destroyed in reverse
// order, so register dependencies first.
type Registry struct {
	mu      sync.Mutex
	entries []Component
	lookup  map[string]Component
}

// NewRegistry creates an empty component registry.
func NewRegistry() *Registry {
	return &Registry{lookup: make(map[string]Component)}
}

// Register adds a component. Component IDs must be unique in a registry.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := c.ID()
	if id == "" {
		return fmt.Errorf("component with empty ID can not be registered")
	}
	if _, exists := r.lookup[id]; exists {
		return fmt.Errorf("component %s already registered", id)
	}

	r.entries = append(r.entries, c)
	r.lookup[id] = c

	logger.Debug("component registered", logger.Fields(logger.FieldComponent, id))
	return nil
}

// InitializeAll initializes all components in registration order. Components
// that are already initialized are skipped. The first failure aborts; the
// registry is then in an undefined partial state and should be discarded.
func (r *Registry) InitializeAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.entries {
		if c.IsInitialized() {
			continue
		}
		if err := c.Initialize(); err != nil {
			logger.Error("component initialization failed", logger.Fields(
				logger.FieldComponent, c.ID(),
				logger.FieldError, err.Error(),
			))
			return fmt.Errorf("failed to initialize %s: %w", c.ID(), err)
		}
		logger.Debug("component initialized", logger.Fields(logger.FieldComponent, c.ID()))
	}
	return nil
}

// DestroyAll destroys all components in reverse registration order.
// Destruction is idempotent, so calling this more than once is safe.
func (r *Registry) DestroyAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.entries) - 1; i >= 0; i-- {
		c := r.entries[i]
		c.Destroy()
		logger.Debug("component destroyed", logger.Fields(logger.FieldComponent, c.ID()))
	}
}

// Get returns a registered component by ID, or nil if not found.
func (r *Registry) Get(id string) Component {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookup[id]
}

// All returns the registered components in registration order.
func (r *Registry) All() []Component {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Component, len(r.entries))
	copy(out, r.entries)
	return out
}
