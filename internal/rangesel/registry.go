// Package rangesel holds rectangular cell range selections.
package rangesel

import (
	"slices"

	"github.com/Iron-Ham/cellgrid/internal/event"
	"github.com/Iron-Ham/cellgrid/internal/grid"
)

// Range is a rectangle between two corner cells. Both corners are in the
// same floating section.
type Range struct {
	Start grid.CellIdentity
	End   grid.CellIdentity
}

// ColumnOrder returns the display order of column ids.
type ColumnOrder func() []string

// Registry holds the current ranges. Columns are compared by display
// position, so the registry needs to know the column order.
type Registry struct {
	bus    *event.Bus
	order  ColumnOrder
	ranges []Range
}

// NewRegistry creates an empty registry.
func NewRegistry(bus *event.Bus, order ColumnOrder) *Registry {
	return &Registry{bus: bus, order: order}
}

// Ranges returns a copy of the current ranges.
func (r *Registry) Ranges() []Range {
	return slices.Clone(r.ranges)
}

// CellRangeCount returns how many ranges contain cell.
func (r *Registry) CellRangeCount(cell grid.CellIdentity) int {
	if len(r.ranges) == 0 {
		return 0
	}
	cols := r.order()
	count := 0
	for _, rg := range r.ranges {
		if contains(rg, cell, cols) {
			count++
		}
	}
	return count
}

// IsCellInAnyRange reports whether any range contains cell.
func (r *Registry) IsCellInAnyRange(cell grid.CellIdentity) bool {
	return r.CellRangeCount(cell) > 0
}

// SetRangeToCell replaces all ranges with a single-cell range.
func (r *Registry) SetRangeToCell(cell grid.CellIdentity) {
	r.ranges = []Range{{Start: cell, End: cell}}
	r.publish()
}

// AddRange adds a range without clearing existing ones.
func (r *Registry) AddRange(rg Range) {
	r.ranges = append(r.ranges, rg)
	r.publish()
}

// ExtendLatestRange moves the end of the most recent range to cell. With no
// range, or when cell is in a different floating section than the range, it
// behaves like SetRangeToCell.
func (r *Registry) ExtendLatestRange(cell grid.CellIdentity) {
	if len(r.ranges) == 0 {
		r.SetRangeToCell(cell)
		return
	}
	latest := &r.ranges[len(r.ranges)-1]
	if latest.Start.Floating != cell.Floating {
		r.SetRangeToCell(cell)
		return
	}
	latest.End = cell
	r.publish()
}

// Clear removes every range.
func (r *Registry) Clear() {
	if len(r.ranges) == 0 {
		return
	}
	r.ranges = nil
	r.publish()
}

// Cells returns every cell inside rg in row then column order.
func (r *Registry) Cells(rg Range) []grid.CellIdentity {
	cols := r.order()
	c0, c1, ok := columnSpan(rg, cols)
	if !ok {
		return nil
	}
	r0, r1 := minMax(rg.Start.RowIndex, rg.End.RowIndex)
	var cells []grid.CellIdentity
	for row := r0; row <= r1; row++ {
		for _, col := range cols[c0 : c1+1] {
			cells = append(cells, grid.CellIdentity{RowIndex: row, ColumnID: col, Floating: rg.Start.Floating})
		}
	}
	return cells
}

func (r *Registry) publish() {
	r.bus.Publish(grid.NewRangeSelectionChangedEvent())
}

func contains(rg Range, cell grid.CellIdentity, cols []string) bool {
	if cell.Floating != rg.Start.Floating {
		return false
	}
	r0, r1 := minMax(rg.Start.RowIndex, rg.End.RowIndex)
	if cell.RowIndex < r0 || cell.RowIndex > r1 {
		return false
	}
	c0, c1, ok := columnSpan(rg, cols)
	if !ok {
		return false
	}
	idx := slices.Index(cols, cell.ColumnID)
	return idx >= c0 && idx <= c1
}

func columnSpan(rg Range, cols []string) (int, int, bool) {
	a := slices.Index(cols, rg.Start.ColumnID)
	b := slices.Index(cols, rg.End.ColumnID)
	if a < 0 || b < 0 {
		return 0, 0, false
	}
	lo, hi := minMax(a, b)
	return lo, hi, true
}

func minMax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
