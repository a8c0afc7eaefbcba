// Package grid holds the row and column model shared by every cell: column
// definitions, live column and row state with their change notifications,
// the request types handed to user callbacks, and the renderer and editor
// contracts.
package grid

import (
	"strconv"
	"strings"
)

// Pinned identifies the section a column is pinned to.
type Pinned uint8

// Pinned sections.
const (
	PinnedNone Pinned = iota
	PinnedLeft
	PinnedRight
)

// String returns the section name, empty for the scrollable centre.
func (p Pinned) String() string {
	switch p {
	case PinnedLeft:
		return "left"
	case PinnedRight:
		return "right"
	default:
		return ""
	}
}

// ParsePinned maps "left"/"right" to a section. Anything else is PinnedNone.
func ParsePinned(s string) Pinned {
	switch strings.ToLower(s) {
	case "left":
		return PinnedLeft
	case "right":
		return PinnedRight
	default:
		return PinnedNone
	}
}

// Floating identifies a pinned summary row section.
type Floating uint8

// Floating sections.
const (
	FloatingNone Floating = iota
	FloatingTop
	FloatingBottom
)

// String returns the section name, empty for ordinary rows.
func (f Floating) String() string {
	switch f {
	case FloatingTop:
		return "top"
	case FloatingBottom:
		return "bottom"
	default:
		return ""
	}
}

// CellIdentity addresses one rendered cell. It never changes for the
// lifetime of a cell controller; a different identity means a new
// controller.
type CellIdentity struct {
	RowIndex int
	ColumnID string
	Pinned   Pinned
	Floating Floating
}

// NewCellIdentity builds the identity of the cell at rowIndex in column.
func NewCellIdentity(rowIndex int, column *Column, floating Floating) CellIdentity {
	return CellIdentity{
		RowIndex: rowIndex,
		ColumnID: column.ID(),
		Pinned:   column.Pinned(),
		Floating: floating,
	}
}

// ID returns the stable key "<row>.<col>.<floating>" used in flash
// broadcasts. The pinned section is not part of the key because a column is
// only ever rendered in one section at a time.
func (c CellIdentity) ID() string {
	return strconv.Itoa(c.RowIndex) + "." + c.ColumnID + "." + c.Floating.String()
}

// SameCell reports whether c and other address the same cell.
func (c CellIdentity) SameCell(other CellIdentity) bool {
	return c.RowIndex == other.RowIndex &&
		c.ColumnID == other.ColumnID &&
		c.Floating == other.Floating
}

func (c CellIdentity) String() string { return c.ID() }
