// Package focus tracks the grid's logically focused cell.
package focus

import (
	"github.com/Iron-Ham/cellgrid/internal/event"
	"github.com/Iron-Ham/cellgrid/internal/grid"
)

// Registry holds the focused cell and broadcasts changes on the grid bus.
type Registry struct {
	bus     *event.Bus
	focused grid.CellIdentity
	has     bool
}

// NewRegistry creates a registry with no focused cell.
func NewRegistry(bus *event.Bus) *Registry {
	return &Registry{bus: bus}
}

// IsCellFocused reports whether cell is the focused cell.
func (r *Registry) IsCellFocused(cell grid.CellIdentity) bool {
	return r.has && r.focused.SameCell(cell)
}

// FocusedCell returns the focused cell, if any.
func (r *Registry) FocusedCell() (grid.CellIdentity, bool) {
	return r.focused, r.has
}

// SetFocusedCell focuses cell. The broadcast is sent even when cell is
// already focused, since forceBrowserFocus may need to move native focus.
func (r *Registry) SetFocusedCell(cell grid.CellIdentity, forceBrowserFocus bool) {
	r.focused, r.has = cell, true
	r.bus.Publish(grid.NewCellFocusedEvent(cell, forceBrowserFocus))
}

// ClearFocusedCell removes focus from every cell.
func (r *Registry) ClearFocusedCell() {
	if !r.has {
		return
	}
	r.focused, r.has = grid.CellIdentity{}, false
	r.bus.Publish(grid.CellFocusedEvent{Base: event.NewBase(grid.EventCellFocused)})
}
