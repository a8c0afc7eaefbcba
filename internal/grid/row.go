package grid

import "github.com/Iron-Ham/cellgrid/internal/event"

// RowNode is one row of the grid. Data is whatever the value service knows
// how to read: a map[string]any, raw JSON, or a FieldAccessor.
type RowNode struct {
	ID       string
	RowIndex int
	Data     any

	Group    bool
	Footer   bool
	Expanded bool
	Floating Floating

	selected bool
	bus      *event.Bus
}

// NewRowNode creates a data row.
func NewRowNode(id string, rowIndex int, data any) *RowNode {
	return &RowNode{
		ID:       id,
		RowIndex: rowIndex,
		Data:     data,
		bus:      event.NewBus(event.WithPanicPropagation()),
	}
}

// Events returns the bus carrying this row's change notifications.
func (r *RowNode) Events() *event.Bus {
	if r.bus == nil {
		r.bus = event.NewBus(event.WithPanicPropagation())
	}
	return r.bus
}

// IsFloating reports whether the row is a pinned summary row.
func (r *RowNode) IsFloating() bool { return r.Floating != FloatingNone }

// IsSelected reports whether the row is selected.
func (r *RowNode) IsSelected() bool { return r.selected }

// SetSelected changes the selection flag and notifies listeners when it
// actually changes.
func (r *RowNode) SetSelected(selected bool) {
	if r.selected == selected {
		return
	}
	r.selected = selected
	r.Events().Publish(RowSelectedEvent{Base: event.NewBase(EventRowSelectedChanged), Node: r})
}

// NotifyCellChanged tells the cells of column that the row's data changed.
// The notification is sent even if the value is the same as before.
func (r *RowNode) NotifyCellChanged(column *Column, oldValue, newValue any) {
	r.Events().Publish(RowCellChangedEvent{
		Base:     event.NewBase(EventRowCellChanged),
		Node:     r,
		Column:   column,
		OldValue: oldValue,
		NewValue: newValue,
	})
}
