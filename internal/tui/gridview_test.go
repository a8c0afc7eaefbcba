package tui

import (
	"strconv"
	"testing"

	"github.com/Iron-Ham/cellgrid/internal/cell"
	"github.com/Iron-Ham/cellgrid/internal/dataset"
	"github.com/Iron-Ham/cellgrid/internal/grid"
	"github.com/Iron-Ham/cellgrid/internal/input"
)

// testDataset has one pinned row at each end and four body rows. Columns
// are defined out of display order on purpose.
func testDataset() *dataset.Dataset {
	row := func(id string, i int, floating grid.Floating) *grid.RowNode {
		n := grid.NewRowNode(id, i, map[string]any{
			"a": "a" + strconv.Itoa(i),
			"b": "b" + strconv.Itoa(i),
			"c": i,
			"d": "d",
		})
		n.Floating = floating
		return n
	}
	ds := &dataset.Dataset{
		Columns: []*grid.ColDef{
			{Field: "d", Pinned: "right", Width: 5},
			{Field: "a", Pinned: "left", Width: 4},
			{Field: "b", Editable: true, Width: 6},
			{Field: "c", Width: 6},
		},
		PinnedTop:    []*grid.RowNode{row("top-0", 0, grid.FloatingTop)},
		PinnedBottom: []*grid.RowNode{row("bottom-0", 0, grid.FloatingBottom)},
	}
	for i := range 4 {
		ds.Rows = append(ds.Rows, row(strconv.Itoa(i), i, grid.FloatingNone))
	}
	return ds
}

func newTestView(t *testing.T, width, height int) *GridView {
	t.Helper()
	v := NewGridView(testDataset(), ViewOptions{})
	t.Cleanup(v.Close)
	v.SetViewport(width, height)
	return v
}

func focused(t *testing.T, v *GridView) grid.CellIdentity {
	t.Helper()
	id, ok := v.Focus().FocusedCell()
	if !ok {
		t.Fatal("no focused cell")
	}
	return id
}

func press(v *GridView, k input.Key) {
	v.Document().DispatchKey(input.NewKey(k))
}

func TestGridView_ColumnOrderAndLayout(t *testing.T) {
	v := newTestView(t, 80, 20)

	var ids []string
	for _, col := range v.Columns() {
		ids = append(ids, col.ID())
	}
	if want := []string{"a", "b", "c", "d"}; !equalIDs(ids, want) {
		t.Fatalf("Columns() = %v, want %v", ids, want)
	}

	c, _ := v.Column("c")
	if left, _ := c.Left(); left != 6 {
		t.Errorf("c left = %d, want 6 (after b in the unpinned section)", left)
	}
	d, _ := v.Column("d")
	if left, _ := d.Left(); left != 0 {
		t.Errorf("d left = %d, want 0 in the right section", left)
	}

	first, _ := v.Cell(1, 0)
	if !first.GUI().HasClass(cell.ClassLastLeftPinned) {
		t.Error("cell in a should carry the last-left-pinned class")
	}
	last, _ := v.Cell(1, 3)
	if !last.GUI().HasClass(cell.ClassFirstRightPinned) {
		t.Error("cell in d should carry the first-right-pinned class")
	}
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGridView_SetColumnWidth(t *testing.T) {
	ds := testDataset()
	ds.Columns[3].Width = 0 // c uses the grid width
	v := NewGridView(ds, ViewOptions{ColumnWidth: 8})
	t.Cleanup(v.Close)

	c, _ := v.Column("c")
	if c.ActualWidth() != 8 {
		t.Errorf("width = %d, want 8", c.ActualWidth())
	}
	v.SetColumnWidth(10)
	if c.ActualWidth() != 10 {
		t.Errorf("width after SetColumnWidth = %d, want 10", c.ActualWidth())
	}
	cl, _ := v.Cell(1, 2)
	if cl.GUI().Style("width") != "10" {
		t.Errorf("cell width style = %q, want 10", cl.GUI().Style("width"))
	}
}

func TestGridView_FocusFirst(t *testing.T) {
	v := newTestView(t, 80, 20)
	v.FocusFirst()

	id := focused(t, v)
	if id.Floating != grid.FloatingNone || id.RowIndex != 0 || id.ColumnID != "a" {
		t.Errorf("focused = %+v, want the first body cell", id)
	}
	c, _ := v.CellFor(id)
	if v.Document().ActiveElement() != c.GUI() {
		t.Error("the focused cell should have native focus")
	}
	if len(v.Ranges().Ranges()) != 1 {
		t.Errorf("ranges = %d, want 1", len(v.Ranges().Ranges()))
	}
}

func TestGridView_ArrowNavigation(t *testing.T) {
	tests := []struct {
		name     string
		keys     []input.Key
		row      int
		col      string
		floating grid.Floating
	}{
		{"down", []input.Key{input.KeyDown}, 1, "a", grid.FloatingNone},
		{"up into pinned top", []input.Key{input.KeyUp}, 0, "a", grid.FloatingTop},
		{"up stops at the top", []input.Key{input.KeyUp, input.KeyUp}, 0, "a", grid.FloatingTop},
		{"left stops at the edge", []input.Key{input.KeyLeft}, 0, "a", grid.FloatingNone},
		{"right crosses sections", []input.Key{input.KeyRight, input.KeyRight, input.KeyRight}, 0, "d", grid.FloatingNone},
		{"down into pinned bottom", []input.Key{input.KeyDown, input.KeyDown, input.KeyDown, input.KeyDown}, 0, "a", grid.FloatingBottom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestView(t, 80, 20)
			v.FocusFirst()
			for _, k := range tt.keys {
				press(v, k)
			}
			id := focused(t, v)
			if id.RowIndex != tt.row || id.ColumnID != tt.col || id.Floating != tt.floating {
				t.Errorf("focused = %+v, want row %d col %s floating %v", id, tt.row, tt.col, tt.floating)
			}
		})
	}
}

func TestGridView_TabWrapsRows(t *testing.T) {
	v := newTestView(t, 80, 20)
	first, _ := v.Cell(1, 3) // body row 0, column d
	first.FocusCell(true)

	press(v, input.KeyTab)
	id := focused(t, v)
	if id.RowIndex != 1 || id.ColumnID != "a" {
		t.Errorf("after tab = %+v, want row 1 column a", id)
	}

	v.Document().DispatchKey(input.KeyEvent{Key: input.KeyTab, Shift: true})
	id = focused(t, v)
	if id.RowIndex != 0 || id.ColumnID != "d" {
		t.Errorf("after shift+tab = %+v, want row 0 column d", id)
	}
}

func TestGridView_TabWhileEditingSkipsReadOnlyCells(t *testing.T) {
	v := newTestView(t, 80, 20)
	start, _ := v.Cell(1, 1) // body row 0, column b
	start.FocusCell(true)

	press(v, input.KeyEnter)
	if start.State() != cell.StateEditingInline {
		t.Fatalf("state = %v, want editing inline", start.State())
	}

	press(v, input.KeyTab)
	if start.IsEditing() {
		t.Error("tab should stop the edit")
	}
	next, _ := v.Cell(2, 1) // c and d are read only; a is not editable either
	if focused(t, v) != next.Identity() {
		t.Errorf("focused = %+v, want %+v", focused(t, v), next.Identity())
	}
	if !next.IsEditing() {
		t.Error("tab while editing should start editing the next editable cell")
	}
}

func TestGridView_MovePage(t *testing.T) {
	// header, 1 top row, 2 body rows, 1 bottom row and the status line
	v := newTestView(t, 80, 6)
	if got := v.bodyCapacity(); got != 2 {
		t.Fatalf("bodyCapacity() = %d, want 2", got)
	}
	v.FocusFirst()

	v.MovePage(true)
	if id := focused(t, v); id.RowIndex != 2 {
		t.Errorf("page down = row %d, want 2", id.RowIndex)
	}
	if row, _ := v.ScrollPosition(); row != 1 {
		t.Errorf("scroll row = %d, want 1", row)
	}

	v.MovePage(true)
	if id := focused(t, v); id.RowIndex != 3 {
		t.Errorf("page down at the end = row %d, want 3", id.RowIndex)
	}

	v.MovePage(false)
	v.MovePage(false)
	if id := focused(t, v); id.RowIndex != 0 || id.Floating != grid.FloatingNone {
		t.Errorf("page up = %+v, want body row 0", id)
	}
}

func TestGridView_Scrolling(t *testing.T) {
	// 4 + 5 pinned columns leave 6 for the unpinned b and c
	v := newTestView(t, 15, 6)

	v.ScrollRows(10)
	if row, _ := v.ScrollPosition(); row != 2 {
		t.Errorf("scroll row = %d, want clamped to 2", row)
	}
	v.ScrollRows(-10)
	if row, _ := v.ScrollPosition(); row != 0 {
		t.Errorf("scroll row = %d, want 0", row)
	}

	c, _ := v.Cell(1, 2)
	v.EnsureVisible(c.Identity())
	if _, x := v.ScrollPosition(); x != 6 {
		t.Errorf("scroll x = %d, want 6 to show column c", x)
	}
	v.ScrollColumns(100)
	if _, x := v.ScrollPosition(); x != 6 {
		t.Errorf("scroll x = %d, want clamped to 6", x)
	}

	pinned, _ := v.Cell(1, 0)
	v.EnsureVisible(pinned.Identity())
	if _, x := v.ScrollPosition(); x != 6 {
		t.Error("pinned columns should not scroll the center")
	}
}

func TestGridView_RefreshVolatileAfterValueChange(t *testing.T) {
	ds := testDataset()
	calls := 0
	ds.Columns = append(ds.Columns, &grid.ColDef{
		ColID:    "total",
		Volatile: true,
		ValueGetter: func(p grid.ValueGetterParams) any {
			calls++
			return calls
		},
	})
	v := NewGridView(ds, ViewOptions{})
	t.Cleanup(v.Close)
	v.SetViewport(80, 20)

	edited, _ := v.Cell(1, 1)
	total, _ := v.Cell(1, 4)
	other, _ := v.Cell(2, 4)
	before, otherBefore := total.Value(), other.Value()

	edited.FocusCell(true)
	press(v, input.KeyEnter)
	v.Document().DispatchKey(input.NewRune('x'))
	press(v, input.KeyEnter)

	if got := edited.Value(); got != "b0x" {
		t.Errorf("edited value = %v, want b0x", got)
	}
	if total.Value() == before {
		t.Error("volatile cell in the edited row should refresh")
	}
	if other.Value() != otherBefore {
		t.Error("volatile cells of other rows should not refresh")
	}
}

func TestGridView_CellAt(t *testing.T) {
	v := newTestView(t, 80, 20)
	c, _ := v.Cell(2, 1)
	child := c.GUI().Children()
	target := c.GUI()
	if len(child) > 0 {
		target = child[0]
	}
	got, ok := v.CellAt(target)
	if !ok || got != c {
		t.Errorf("CellAt() = %v, %v", got, ok)
	}
	if _, ok := v.CellAt(v.Document().Body()); ok {
		t.Error("CellAt(body) should find nothing")
	}
}

func TestGridView_CloseDestroysCells(t *testing.T) {
	v := NewGridView(testDataset(), ViewOptions{})
	c, _ := v.Cell(0, 0)
	v.Close()
	v.Close()
	if !c.IsDestroyed() {
		t.Error("Close should destroy every cell")
	}
}
