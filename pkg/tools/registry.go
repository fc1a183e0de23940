package tools

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Registry holds the tools exposed to the conversational runtime. It is safe
// for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Definition
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Definition),
	}
}

// Register adds a tool. Registering the same name twice replaces the earlier
// definition.
func (r *Registry) Register(def Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if def.Name == "" {
		return errors.New("tool name cannot be empty")
	}
	if def.Handler == nil {
		return errors.Errorf("tool %s has no handler", def.Name)
	}
	r.tools[def.Name] = def
	return nil
}

// Get retrieves a tool by name. A copy is returned to prevent external
// modification.
func (r *Registry) Get(name string) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, exists := r.tools[name]
	if !exists {
		return nil, errors.Errorf("tool not found: %s", name)
	}
	defCopy := def
	return &defCopy, nil
}

// List returns all registered tools, sorted by name for a stable schema
// surface.
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.tools))
	for _, def := range r.tools {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
