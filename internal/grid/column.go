package grid

import "github.com/Iron-Ham/cellgrid/internal/event"

// Column is the live state of one column. Layout changes are published on
// the column's own bus so that only the cells of that column react.
type Column struct {
	def *ColDef
	id  string

	left        int
	hasLeft     bool
	actualWidth int
	pinned      Pinned

	firstRightPinned bool
	lastLeftPinned   bool

	bus *event.Bus
}

// NewColumn creates a column for def. The width defaults to def.Width.
func NewColumn(def *ColDef) *Column {
	return &Column{
		def:         def,
		id:          def.ID(),
		actualWidth: def.Width,
		pinned:      ParsePinned(def.Pinned),
		bus:         event.NewBus(event.WithPanicPropagation()),
	}
}

// ID returns the column id.
func (c *Column) ID() string { return c.id }

// ColDef returns the definition the column was created from.
func (c *Column) ColDef() *ColDef { return c.def }

// Events returns the bus carrying this column's change notifications.
func (c *Column) Events() *event.Bus { return c.bus }

// Left returns the horizontal offset, if one is set.
func (c *Column) Left() (int, bool) { return c.left, c.hasLeft }

// SetLeft sets the horizontal offset.
func (c *Column) SetLeft(left int) {
	if c.hasLeft && c.left == left {
		return
	}
	c.left, c.hasLeft = left, true
	c.bus.Publish(ColumnChangedEvent{Base: event.NewBase(EventColumnLeftChanged), Column: c})
}

// ClearLeft removes the horizontal offset.
func (c *Column) ClearLeft() {
	if !c.hasLeft {
		return
	}
	c.left, c.hasLeft = 0, false
	c.bus.Publish(ColumnChangedEvent{Base: event.NewBase(EventColumnLeftChanged), Column: c})
}

// ActualWidth returns the rendered width.
func (c *Column) ActualWidth() int { return c.actualWidth }

// SetActualWidth sets the rendered width.
func (c *Column) SetActualWidth(width int) {
	if c.actualWidth == width {
		return
	}
	c.actualWidth = width
	c.bus.Publish(ColumnChangedEvent{Base: event.NewBase(EventColumnWidthChanged), Column: c})
}

// Pinned returns the section the column is pinned to.
func (c *Column) Pinned() Pinned { return c.pinned }

// SetPinned moves the column to another section.
func (c *Column) SetPinned(p Pinned) { c.pinned = p }

// IsFirstRightPinned reports whether this is the first right-pinned column.
func (c *Column) IsFirstRightPinned() bool { return c.firstRightPinned }

// IsLastLeftPinned reports whether this is the last left-pinned column.
func (c *Column) IsLastLeftPinned() bool { return c.lastLeftPinned }

// SetFirstRightPinned sets the first-right-pinned edge flag.
func (c *Column) SetFirstRightPinned(v bool) {
	if c.firstRightPinned == v {
		return
	}
	c.firstRightPinned = v
	c.bus.Publish(ColumnChangedEvent{Base: event.NewBase(EventColumnFirstRightPinnedChanged), Column: c})
}

// SetLastLeftPinned sets the last-left-pinned edge flag.
func (c *Column) SetLastLeftPinned(v bool) {
	if c.lastLeftPinned == v {
		return
	}
	c.lastLeftPinned = v
	c.bus.Publish(ColumnChangedEvent{Base: event.NewBase(EventColumnLastLeftPinnedChanged), Column: c})
}

// IsCellEditable reports whether the column allows editing row. The
// predicate, when set, takes precedence over the Editable flag.
func (c *Column) IsCellEditable(row *RowNode, shared Shared) bool {
	if c.def.EditableFunc != nil {
		return c.def.EditableFunc(EditableParams{
			Node:   row,
			Data:   row.Data,
			Column: c,
			ColDef: c.def,
			Shared: shared,
		})
	}
	return c.def.Editable
}

// UpdatePinnedEdges recomputes the first-right and last-left flags of
// columns, which must be in display order.
func UpdatePinnedEdges(columns []*Column) {
	lastLeft, firstRight := -1, -1
	for i, col := range columns {
		switch col.Pinned() {
		case PinnedLeft:
			lastLeft = i
		case PinnedRight:
			if firstRight < 0 {
				firstRight = i
			}
		}
	}
	for i, col := range columns {
		col.SetLastLeftPinned(i == lastLeft)
		col.SetFirstRightPinned(i == firstRight)
	}
}
