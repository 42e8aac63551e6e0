package shape

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Provider is implemented by Go types that describe their own shape. It
// replaces compile-time derivation: the returned value is the single source
// of truth for how the type is sampled.
type Provider interface {
	SampleShape() Shape
}

// Registry stores shapes by name. Adapters fill it from schema documents and
// applications register their Provider types at start-up.
type Registry struct {
	mu     sync.RWMutex
	shapes map[string]Shape
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{shapes: make(map[string]Shape)}
}

// Register validates s and stores it under name. Duplicate names return an
// error.
func (r *Registry) Register(name string, s Shape) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("shape: name is required")
	}
	if err := Validate(s); err != nil {
		return fmt.Errorf("shape: register %q: %w", trimmed, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.shapes == nil {
		r.shapes = make(map[string]Shape)
	}
	if _, exists := r.shapes[trimmed]; exists {
		return fmt.Errorf("shape: %q already registered", trimmed)
	}
	r.shapes[trimmed] = s
	return nil
}

// RegisterProvider stores the shape exposed by p.
func (r *Registry) RegisterProvider(name string, p Provider) error {
	if p == nil {
		return fmt.Errorf("shape: provider for %q is nil", name)
	}
	return r.Register(name, p.SampleShape())
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, s Shape) {
	if err := r.Register(name, s); err != nil {
		panic(err)
	}
}

// Get retrieves a shape by name.
func (r *Registry) Get(name string) (Shape, error) {
	if r == nil {
		return nil, fmt.Errorf("shape: %q not found", name)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.shapes[name]
	if !ok {
		return nil, fmt.Errorf("shape: %q not found", name)
	}
	return s, nil
}

// List returns the sorted shape names.
func (r *Registry) List() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.shapes))
	for name := range r.shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a shape is registered under name.
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.shapes[name]
	return ok
}

// Len returns the number of registered shapes.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.shapes)
}

// Merge copies every shape of other into r, failing on the first duplicate.
func (r *Registry) Merge(other *Registry) error {
	for _, name := range other.List() {
		s, err := other.Get(name)
		if err != nil {
			return err
		}
		if err := r.Register(name, s); err != nil {
			return err
		}
	}
	return nil
}
