// Package render chooses how a cell's value element is populated and mounts
// custom renderers.
package render

import (
	"slices"
	"sync"

	"github.com/Iron-Ham/cellgrid/internal/errors"
	"github.com/Iron-Ham/cellgrid/internal/grid"
)

// Built-in renderer names.
const (
	GroupRenderer             = "group"
	AnimateShowChangeRenderer = "animateShowChange"
)

// Registry maps renderer names to renderers.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]grid.Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]grid.Renderer)}
}

// NewDefaultRegistry creates a registry holding the built-in renderers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.renderers[GroupRenderer] = grid.FunctionRenderer(Group)
	r.renderers[AnimateShowChangeRenderer] = grid.ComponentRenderer(NewAnimateShowChange)
	return r
}

// Register adds or replaces the renderer registered under name.
func (r *Registry) Register(name string, renderer grid.Renderer) error {
	if name == "" {
		return errors.NewValidationError("renderer name is empty").WithField("name")
	}
	if !renderer.Valid() {
		return errors.NewValidationError("renderer has no implementation").WithField("name").WithValue(name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[name] = renderer
	return nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Resolve returns the renderer ref points to. A name that is not registered
// is a configuration error wrapping ErrRendererNotFound.
func (r *Registry) Resolve(ref grid.RendererRef) (grid.Renderer, error) {
	if direct, ok := ref.Direct(); ok {
		if !direct.Valid() {
			return grid.Renderer{}, errors.NewConfigurationError("renderer has no implementation", errors.ErrRendererNotFound)
		}
		return direct, nil
	}
	name, ok := ref.Name()
	if !ok {
		return grid.Renderer{}, errors.NewConfigurationError("no renderer configured", errors.ErrRendererNotFound)
	}

	r.mu.RLock()
	renderer, found := r.renderers[name]
	r.mu.RUnlock()
	if !found {
		return grid.Renderer{}, errors.NewConfigurationError("renderer is not registered", errors.ErrRendererNotFound).WithName(name)
	}
	return renderer, nil
}
