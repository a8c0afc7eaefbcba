// Package editor creates cell editors and mounts them inline or in a popup.
package editor

import (
	"slices"
	"sync"

	"github.com/Iron-Ham/cellgrid/internal/errors"
	"github.com/Iron-Ham/cellgrid/internal/grid"
)

// Built-in editor names.
const (
	TextEditor      = grid.DefaultEditorName
	PopupTextEditor = "popupText"
	SelectEditor    = "select"
)

// Factory creates a fresh editor.
type Factory func() grid.CellEditor

// Registry maps editor names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// NewDefaultRegistry creates a registry holding the built-in editors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.factories[TextEditor] = NewText
	r.factories[PopupTextEditor] = NewPopupText
	r.factories[SelectEditor] = NewSelect
	return r
}

// Register adds or replaces the factory registered under name.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return errors.NewValidationError("editor name is empty").WithField("name")
	}
	if factory == nil {
		return errors.NewValidationError("editor factory is nil").WithField("name").WithValue(name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
	return nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Create builds the editor ref points to. The zero ref means the text
// editor. Unknown names are a configuration error wrapping
// ErrEditorNotFound.
func (r *Registry) Create(ref grid.EditorRef) (grid.CellEditor, error) {
	if factory, ok := ref.Factory(); ok {
		if factory == nil {
			return nil, errors.NewConfigurationError("editor factory is nil", errors.ErrEditorNotFound)
		}
		return factory(), nil
	}

	name, _ := ref.Name()
	r.mu.RLock()
	factory, found := r.factories[name]
	r.mu.RUnlock()
	if !found {
		return nil, errors.NewConfigurationError("editor is not registered", errors.ErrEditorNotFound).WithName(name)
	}
	return factory(), nil
}
