package grid

import "github.com/Iron-Ham/cellgrid/internal/event"

// Grid-wide event types.
const (
	EventCellFocused           = "cell.focused"
	EventRangeSelectionChanged = "range.changed"
	EventFlashCells            = "cells.flash"
	EventCellClicked           = "cell.clicked"
	EventCellDoubleClicked     = "cell.double_clicked"
	EventCellContextMenu       = "cell.context_menu"
	EventCellValueChanged      = "cell.value_changed"
)

// Column event types.
const (
	EventColumnLeftChanged             = "column.left_changed"
	EventColumnWidthChanged            = "column.width_changed"
	EventColumnFirstRightPinnedChanged = "column.first_right_pinned_changed"
	EventColumnLastLeftPinnedChanged   = "column.last_left_pinned_changed"
)

// Row event types.
const (
	EventRowCellChanged     = "row.cell_changed"
	EventRowSelectedChanged = "row.selected_changed"
)

// CellFocusedEvent announces a new focused cell. Cells compare their own
// identity against the focus registry rather than the payload.
type CellFocusedEvent struct {
	event.Base
	Cell              CellIdentity
	HasCell           bool
	ForceBrowserFocus bool
}

// NewCellFocusedEvent creates a focus broadcast for cell.
func NewCellFocusedEvent(cell CellIdentity, forceBrowserFocus bool) CellFocusedEvent {
	return CellFocusedEvent{
		Base:              event.NewBase(EventCellFocused),
		Cell:              cell,
		HasCell:           true,
		ForceBrowserFocus: forceBrowserFocus,
	}
}

// RangeSelectionChangedEvent announces that the set of ranges changed.
type RangeSelectionChangedEvent struct {
	event.Base
}

// NewRangeSelectionChangedEvent creates a range broadcast.
func NewRangeSelectionChangedEvent() RangeSelectionChangedEvent {
	return RangeSelectionChangedEvent{Base: event.NewBase(EventRangeSelectionChanged)}
}

// FlashCellsEvent asks the named cells to run the highlight animation.
// Cells is keyed by CellIdentity.ID.
type FlashCellsEvent struct {
	event.Base
	Cells map[string]bool
}

// NewFlashCellsEvent creates a flash broadcast for cells.
func NewFlashCellsEvent(cells ...CellIdentity) FlashCellsEvent {
	ids := make(map[string]bool, len(cells))
	for _, c := range cells {
		ids[c.ID()] = true
	}
	return FlashCellsEvent{Base: event.NewBase(EventFlashCells), Cells: ids}
}

// CellMouseEvent carries a click, double-click or context-menu notification.
type CellMouseEvent struct {
	event.Base
	Params CellEventParams
}

// NewCellMouseEvent creates a cell mouse notification of eventType.
func NewCellMouseEvent(eventType string, params CellEventParams) CellMouseEvent {
	return CellMouseEvent{Base: event.NewBase(eventType), Params: params}
}

// CellValueChangedEvent is published after a value is written back.
type CellValueChangedEvent struct {
	event.Base
	Params CellValueChangedParams
}

// ColumnChangedEvent is published on a column's bus.
type ColumnChangedEvent struct {
	event.Base
	Column *Column
}

// RowCellChangedEvent is published on a row's bus when one cell's data
// changed.
type RowCellChangedEvent struct {
	event.Base
	Node     *RowNode
	Column   *Column
	OldValue any
	NewValue any
}

// RowSelectedEvent is published on a row's bus when its selection changes.
type RowSelectedEvent struct {
	event.Base
	Node *RowNode
}
