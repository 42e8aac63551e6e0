package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-samplify/pkg/document"
	"github.com/goliatone/go-samplify/pkg/shape"
)

// Registry stores adapters by name.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

// NewRegistry creates a registry holding the supplied adapters.
func NewRegistry(adapters ...Adapter) (*Registry, error) {
	r := &Registry{adapters: make(map[string]Adapter)}
	for _, adapter := range adapters {
		if err := r.Register(adapter); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds an adapter by its Name(). Duplicate names return an error.
func (r *Registry) Register(adapter Adapter) error {
	if adapter == nil {
		return fmt.Errorf("discovery: adapter is required")
	}
	name := normalizeName(adapter.Name())
	if name == "" {
		return fmt.Errorf("discovery: adapter name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.adapters[name]; exists {
		return fmt.Errorf("discovery: adapter %q already registered", name)
	}
	r.adapters[name] = adapter
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(adapter Adapter) {
	if err := r.Register(adapter); err != nil {
		panic(err)
	}
}

// Get retrieves an adapter by name.
func (r *Registry) Get(name string) (Adapter, error) {
	key := normalizeName(name)
	if key == "" {
		return nil, fmt.Errorf("discovery: adapter name is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, ok := r.adapters[key]
	if !ok {
		return nil, fmt.Errorf("discovery: adapter %q not found", key)
	}
	return adapter, nil
}

// List returns the sorted adapter names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Detect returns every adapter that recognises the payload, by name order.
func (r *Registry) Detect(src document.Source, raw []byte) []Adapter {
	var matches []Adapter
	for _, name := range r.List() {
		adapter, err := r.Get(name)
		if err != nil {
			continue
		}
		if adapter.Detect(src, raw) {
			matches = append(matches, adapter)
		}
	}
	return matches
}

// Resolve picks the adapter for doc: the named one when format is set,
// otherwise the single adapter that detects the payload.
func (r *Registry) Resolve(doc document.Document, format string) (Adapter, error) {
	if strings.TrimSpace(format) != "" {
		return r.Get(format)
	}
	matches := r.Detect(doc.Source(), doc.Raw())
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("discovery: no adapter recognises %s", doc.Location())
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, match := range matches {
			names[i] = match.Name()
		}
		return nil, fmt.Errorf("discovery: multiple adapters matched %s (%s), specify format", doc.Location(), strings.Join(names, ", "))
	}
}

// Shapes resolves the adapter for doc and returns the shapes it declares.
func (r *Registry) Shapes(ctx context.Context, doc document.Document, format string) (*shape.Registry, error) {
	adapter, err := r.Resolve(doc, format)
	if err != nil {
		return nil, err
	}
	shapes, err := adapter.Shapes(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("discovery: %s: %w", adapter.Name(), err)
	}
	return shapes, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
