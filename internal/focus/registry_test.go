package focus

import (
	"testing"

	"github.com/Iron-Ham/cellgrid/internal/event"
	"github.com/Iron-Ham/cellgrid/internal/grid"
)

func TestRegistry(t *testing.T) {
	bus := event.NewBus()
	reg := NewRegistry(bus)

	var events []grid.CellFocusedEvent
	bus.Subscribe(grid.EventCellFocused, func(e event.Event) {
		events = append(events, e.(grid.CellFocusedEvent))
	})

	a := grid.CellIdentity{RowIndex: 0, ColumnID: "a"}
	b := grid.CellIdentity{RowIndex: 1, ColumnID: "a"}

	if reg.IsCellFocused(a) {
		t.Error("nothing should be focused initially")
	}

	reg.SetFocusedCell(a, false)
	reg.SetFocusedCell(a, true)
	if !reg.IsCellFocused(a) || reg.IsCellFocused(b) {
		t.Error("only a should be focused")
	}
	if len(events) != 2 || !events[1].ForceBrowserFocus {
		t.Errorf("events = %+v", events)
	}

	pinnedA := a
	pinnedA.Pinned = grid.PinnedLeft
	if !reg.IsCellFocused(pinnedA) {
		t.Error("focus should not depend on the pinned section")
	}

	reg.ClearFocusedCell()
	reg.ClearFocusedCell()
	if _, ok := reg.FocusedCell(); ok {
		t.Error("FocusedCell() after clear")
	}
	if len(events) != 3 || events[2].HasCell {
		t.Errorf("clear should publish one event without a cell, got %+v", events)
	}
}
