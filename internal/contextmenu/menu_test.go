package contextmenu

import (
	"errors"
	"testing"

	"github.com/Iron-Ham/cellgrid/internal/dom"
	"github.com/Iron-Ham/cellgrid/internal/event"
	"github.com/Iron-Ham/cellgrid/internal/grid"
	"github.com/Iron-Ham/cellgrid/internal/input"
	"github.com/Iron-Ham/cellgrid/internal/popup"
)

type fakeColumns []*grid.Column

func (f fakeColumns) Column(id string) (*grid.Column, bool) {
	for _, c := range f {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

func (f fakeColumns) Columns() []*grid.Column { return f }

type mapValues struct{}

func (mapValues) GetValue(col *grid.Column, data any, _ *grid.RowNode) any {
	return data.(map[string]any)[col.ColDef().Field]
}

type fixture struct {
	svc     *Service
	doc     *dom.Document
	popups  *popup.Service
	row     *grid.RowNode
	cols    fakeColumns
	copied  []string
	flashed []map[string]bool
}

func newFixture(t *testing.T, writeErr error) *fixture {
	t.Helper()
	f := &fixture{doc: dom.NewDocument()}
	bus := event.NewBus()
	bus.Subscribe(grid.EventFlashCells, func(e event.Event) {
		f.flashed = append(f.flashed, e.(grid.FlashCellsEvent).Cells)
	})
	f.popups = popup.NewService(f.doc, nil, nil)
	f.cols = fakeColumns{
		grid.NewColumn(&grid.ColDef{Field: "name"}),
		grid.NewColumn(&grid.ColDef{Field: "qty"}),
	}
	f.row = grid.NewRowNode("r1", 3, map[string]any{"name": "Widget", "qty": 4})
	f.svc = NewService(bus, f.doc, f.popups, f.cols, mapValues{},
		WithClipboard(func(s string) error {
			if writeErr != nil {
				return writeErr
			}
			f.copied = append(f.copied, s)
			return nil
		}))
	return f
}

func TestMenu_CopyCellWithEnter(t *testing.T) {
	f := newFixture(t, nil)
	f.svc.ShowMenu(f.row, f.cols[0], "Widget", input.MouseEvent{Kind: input.MouseContextMenu})

	if !f.svc.IsOpen() || len(f.popups.Popups()) != 1 {
		t.Fatal("menu should be open in the popup layer")
	}
	menu := f.popups.Popups()[0]
	if f.doc.ActiveElement() != menu {
		t.Error("menu should take native focus")
	}
	if !menu.Children()[0].HasClass(ActiveItemClass) {
		t.Error("first item should be highlighted")
	}

	f.doc.DispatchKey(input.NewKey(input.KeyEnter))

	if len(f.copied) != 1 || f.copied[0] != "Widget" {
		t.Errorf("copied = %v", f.copied)
	}
	if len(f.flashed) != 1 || !f.flashed[0]["3.name."] {
		t.Errorf("flashed = %v", f.flashed)
	}
	if f.svc.IsOpen() || len(f.popups.Popups()) != 0 {
		t.Error("menu should close after running an item")
	}
}

func TestMenu_CopyRowWithArrowAndClick(t *testing.T) {
	f := newFixture(t, nil)
	f.svc.ShowMenu(f.row, f.cols[0], "Widget", input.MouseEvent{})

	menu := f.popups.Popups()[0]
	f.doc.DispatchKey(input.NewKey(input.KeyDown))
	if !menu.Children()[1].HasClass(ActiveItemClass) || menu.Children()[0].HasClass(ActiveItemClass) {
		t.Error("Down should move the highlight")
	}

	f.doc.DispatchMouse(menu.Children()[1], input.MouseEvent{Kind: input.MouseClick})

	if len(f.copied) != 1 || f.copied[0] != "Widget\t4" {
		t.Errorf("copied = %q", f.copied)
	}
	if len(f.flashed) != 1 || len(f.flashed[0]) != 2 {
		t.Errorf("flashed = %v", f.flashed)
	}
}

func TestMenu_EscapeAndOutsideClickClose(t *testing.T) {
	f := newFixture(t, nil)

	f.svc.ShowMenu(f.row, f.cols[0], "Widget", input.MouseEvent{})
	f.doc.DispatchKey(input.NewKey(input.KeyEscape))
	if f.svc.IsOpen() {
		t.Error("Escape should close the menu")
	}

	f.svc.ShowMenu(f.row, f.cols[0], "Widget", input.MouseEvent{})
	f.popups.HandleMouseDown(nil)
	if f.svc.IsOpen() {
		t.Error("an outside click should close the menu")
	}
	if len(f.copied) != 0 {
		t.Errorf("nothing should be copied, got %v", f.copied)
	}
}

func TestMenu_ClipboardFailureDoesNotFlash(t *testing.T) {
	f := newFixture(t, errors.New("no clipboard"))
	f.svc.ShowMenu(f.row, f.cols[0], "Widget", input.MouseEvent{})
	f.doc.DispatchKey(input.NewKey(input.KeyEnter))

	if len(f.flashed) != 0 {
		t.Errorf("flashed = %v, want none", f.flashed)
	}
}
