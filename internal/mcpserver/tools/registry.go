package tools

import (
	"fmt"
	"sync"
)

// Registry is the static catalog of tools. Built once at startup; a
// duplicate name is a configuration error and aborts startup.
type Registry struct {
	mu       sync.RWMutex
	tools    map[string]*toolEntry
	ordering []string // preserve registration order for consistent tools/list
}

type toolEntry struct {
	def     Definition
	handler Handler
}

// NewRegistry creates an empty tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]*toolEntry),
	}
}

// Register adds a tool definition and handler to the registry
func (r *Registry) Register(def Definition, handler Handler) error {
	if def.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[def.Name]; exists {
		return fmt.Errorf("tool %s already registered", def.Name)
	}

	r.tools[def.Name] = &toolEntry{
		def:     def,
		handler: handler,
	}
	r.ordering = append(r.ordering, def.Name)

	return nil
}

// MustRegister registers a tool or panics on error (for startup registration)
func (r *Registry) MustRegister(def Definition, handler Handler) {
	if err := r.Register(def, handler); err != nil {
		panic(err)
	}
}

// List returns all registered tool descriptors in registration order
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descriptors := make([]Descriptor, 0, len(r.ordering))
	for _, name := range r.ordering {
		entry := r.tools[name]
		descriptors = append(descriptors, Descriptor{
			Name:        entry.def.Name,
			Description: entry.def.Description,
			InputSchema: entry.def.InputSchema,
		})
	}

	return descriptors
}

// Lookup retrieves a tool by name. Unknown names are a lookup miss, never a
// transport failure.
func (r *Registry) Lookup(name string) (Definition, Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.tools[name]
	if !exists {
		return Definition{}, nil, false
	}
	return entry.def, entry.handler, true
}
