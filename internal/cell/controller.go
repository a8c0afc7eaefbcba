// Package cell implements the lifecycle of one rendered grid cell: value
// resolution, population, visual state, keyboard and mouse handling, and the
// switch between display and edit modes.
//
// A Controller owns its element subtree exclusively. Everything it
// subscribes to during Init is released by Destroy.
package cell

import (
	"strconv"

	"github.com/Iron-Ham/cellgrid/internal/cell/editor"
	"github.com/Iron-Ham/cellgrid/internal/cell/render"
	"github.com/Iron-Ham/cellgrid/internal/dom"
	"github.com/Iron-Ham/cellgrid/internal/event"
	"github.com/Iron-Ham/cellgrid/internal/grid"
	"github.com/Iron-Ham/cellgrid/internal/logging"
	"github.com/Iron-Ham/cellgrid/internal/value"
)

// Cell classes and attributes.
const (
	ClassCell             = "cg-cell"
	ClassValue            = "cg-cell-value"
	ClassWrapper          = "cg-cell-wrapper"
	ClassGroup            = "cg-group-cell"
	ClassFooter           = "cg-footer-cell"
	ClassFocus            = "cg-cell-focus"
	ClassNoFocus          = "cg-cell-no-focus"
	ClassRangeSelected    = "cg-cell-range-selected"
	ClassFirstRightPinned = "cg-cell-first-right-pinned"
	ClassLastLeftPinned   = "cg-cell-last-left-pinned"
	ClassInlineEditing    = "cg-cell-inline-editing"
	ClassNotInlineEditing = "cg-cell-not-inline-editing"
	AttrColID             = "colId"
)

// maxRangeDepth is the deepest range class; deeper overlaps share it.
const maxRangeDepth = 4

// EditState is the display or edit mode of a cell.
type EditState uint8

// Edit states.
const (
	StateDisplaying EditState = iota
	StateEditingInline
	StateEditingInPopup
)

func (s EditState) String() string {
	switch s {
	case StateEditingInline:
		return "editing_inline"
	case StateEditingInPopup:
		return "editing_in_popup"
	default:
		return "displaying"
	}
}

// Controller manages one cell.
type Controller struct {
	column   *grid.Column
	row      *grid.RowNode
	rowIndex int
	identity grid.CellIdentity

	deps     Deps
	logger   *logging.Logger
	selector *render.Selector
	host     *editor.Host

	gui           *dom.Element
	wrapper       *dom.Element
	parentOfValue *dom.Element
	parentRow     *dom.Element

	value             any
	checkboxSelection bool

	state    EditState
	session  *editor.Session
	renderer grid.CellRenderer

	group *event.Group
	anim  *animator

	initialized bool
	destroyed   bool

	focused          bool
	focusKnown       bool
	rangeCount       int
	firstRightPinned bool
	lastLeftPinned   bool
}

// New creates the controller and its element. Nothing is rendered or
// subscribed until Init.
func New(column *grid.Column, row *grid.RowNode, rowIndex int, deps Deps) *Controller {
	if deps.Options == nil {
		deps.Options = grid.DefaultOptions()
	}
	if deps.Logger == nil {
		deps.Logger = logging.NopLogger()
	}
	if deps.Renderers == nil {
		deps.Renderers = render.NewDefaultRegistry()
	}
	if deps.Editors == nil {
		deps.Editors = editor.NewDefaultRegistry()
	}

	gui := dom.NewElement("div")
	c := &Controller{
		column:   column,
		row:      row,
		rowIndex: rowIndex,
		identity: grid.NewCellIdentity(rowIndex, column, row.Floating),
		deps:     deps,
		logger:   deps.Logger.WithCell(row.ID, column.ID()),
		selector: render.NewSelector(deps.Renderers, deps.Templates),
		host:     editor.NewHost(deps.Popups),
		gui:      gui,
		group:    event.NewGroup(),
	}
	c.anim = &animator{el: gui, sched: deps.Scheduler, opts: deps.Options}
	return c
}

// Init resolves the value, subscribes to everything the cell reacts to and
// renders it. Later calls do nothing.
func (c *Controller) Init() {
	if c.initialized || c.destroyed {
		return
	}
	c.initialized = true

	c.value = c.getValue()
	c.checkboxSelection = c.CalculateCheckboxSelection()

	c.setLeftOnCell()
	c.setWidthOnCell()
	c.setPinnedClasses()
	c.addRangeSelectedListener()
	c.addHighlightListener()
	c.addChangeListener()
	c.addCellFocusedListener()
	c.addKeyListeners()
	c.addMouseListeners()
	c.addFocusOutListener()

	if !c.deps.Options.SuppressCellSelection {
		c.gui.SetAttribute("tabindex", "-1")
	}

	c.addClasses()
	c.setInlineEditingClass()
	c.createParentOfValue()
	c.populate()
}

// Destroy releases every subscription, tears down a mounted editor and
// renderer, and cancels animations. Later calls do nothing.
func (c *Controller) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true

	c.group.Release()
	c.anim.stop()

	if c.session != nil {
		session := c.session
		c.session = nil
		c.state = StateDisplaying
		session.Unmount()
	}
	c.destroyRenderer()
}

// GUI returns the cell element.
func (c *Controller) GUI() *dom.Element { return c.gui }

// Column returns the cell's column.
func (c *Controller) Column() *grid.Column { return c.column }

// Row returns the cell's row.
func (c *Controller) Row() *grid.RowNode { return c.row }

// Identity returns the cell identity.
func (c *Controller) Identity() grid.CellIdentity { return c.identity }

// Value returns the value computed by the last refresh.
func (c *Controller) Value() any { return c.value }

// State returns the edit state.
func (c *Controller) State() EditState { return c.state }

// IsEditing reports whether an editor is mounted.
func (c *Controller) IsEditing() bool { return c.state != StateDisplaying }

// IsDestroyed reports whether Destroy has run.
func (c *Controller) IsDestroyed() bool { return c.destroyed }

// IsVolatile reports whether the column asks for a refresh on every row
// refresh.
func (c *Controller) IsVolatile() bool { return c.column.ColDef().Volatile }

// ParentRow returns the row element the cell was placed in.
func (c *Controller) ParentRow() *dom.Element { return c.parentRow }

// SetParentRow records the row element the cell was placed in.
func (c *Controller) SetParentRow(el *dom.Element) { c.parentRow = el }

// CalculateCheckboxSelection reports whether the cell shows a selection
// checkbox. Floating rows never do. An explicit column setting wins, then
// the column predicate, then the grid predicate.
func (c *Controller) CalculateCheckboxSelection() bool {
	if c.row.IsFloating() {
		return false
	}
	setting := c.column.ColDef().CheckboxSelection
	if b, ok := setting.Bool(); ok {
		return b
	}
	fn := setting.Func()
	if fn == nil {
		fn = c.deps.Options.CheckboxSelection
	}
	if fn == nil {
		return false
	}
	return fn(grid.CheckboxSelectionParams{CellParams: c.cellParams()})
}

// FocusCell makes this the focused cell. With forceBrowserFocus the cell
// element also takes native focus.
func (c *Controller) FocusCell(forceBrowserFocus bool) {
	c.deps.Focus.SetFocusedCell(c.identity, forceBrowserFocus)
}

func (c *Controller) getValue() any {
	data := value.DataForRow(c.row, c.deps.Options)
	return c.deps.Values.GetValue(c.column, data, c.row)
}

func (c *Controller) cellParams() grid.CellParams {
	return grid.CellParams{
		Node:     c.row,
		Data:     c.row.Data,
		Value:    c.value,
		RowIndex: c.rowIndex,
		Column:   c.column,
		ColDef:   c.column.ColDef(),
		Shared:   c.deps.Shared,
	}
}

// -----------------------------------------------------------------------------
// Listeners
// -----------------------------------------------------------------------------

func (c *Controller) setLeftOnCell() {
	update := func() {
		if left, ok := c.column.Left(); ok {
			c.gui.SetStyle("left", strconv.Itoa(left))
		} else {
			c.gui.SetStyle("left", "")
		}
	}
	c.group.Subscribe(c.column.Events(), grid.EventColumnLeftChanged, func(event.Event) {
		if !c.destroyed {
			update()
		}
	})
	update()
}

func (c *Controller) setWidthOnCell() {
	update := func() {
		c.gui.SetStyle("width", strconv.Itoa(c.column.ActualWidth()))
	}
	c.group.Subscribe(c.column.Events(), grid.EventColumnWidthChanged, func(event.Event) {
		if !c.destroyed {
			update()
		}
	})
	update()
}

func (c *Controller) setPinnedClasses() {
	update := func(event.Event) {
		if c.destroyed {
			return
		}
		if v := c.column.IsFirstRightPinned(); v != c.firstRightPinned {
			c.firstRightPinned = v
			c.gui.SetClass(ClassFirstRightPinned, v)
		}
		if v := c.column.IsLastLeftPinned(); v != c.lastLeftPinned {
			c.lastLeftPinned = v
			c.gui.SetClass(ClassLastLeftPinned, v)
		}
	}
	bus := c.column.Events()
	c.group.Subscribe(bus, grid.EventColumnFirstRightPinnedChanged, update)
	c.group.Subscribe(bus, grid.EventColumnLastLeftPinnedChanged, update)
	update(nil)
}

func (c *Controller) addRangeSelectedListener() {
	if c.deps.Ranges == nil {
		return
	}
	update := func(event.Event) {
		if c.destroyed {
			return
		}
		count := c.deps.Ranges.CellRangeCount(c.identity)
		if count == c.rangeCount {
			return
		}
		c.gui.SetClass(ClassRangeSelected, count != 0)
		for depth := 1; depth <= maxRangeDepth; depth++ {
			on := count == depth
			if depth == maxRangeDepth {
				on = count >= depth
			}
			c.gui.SetClass(ClassRangeSelected+"-"+strconv.Itoa(depth), on)
		}
		c.rangeCount = count
	}
	c.group.Subscribe(c.deps.Bus, grid.EventRangeSelectionChanged, update)
	update(nil)
}

func (c *Controller) addHighlightListener() {
	if c.deps.Ranges == nil {
		return
	}
	c.group.Subscribe(c.deps.Bus, grid.EventFlashCells, func(e event.Event) {
		if c.destroyed {
			return
		}
		if flash, ok := e.(grid.FlashCellsEvent); ok && flash.Cells[c.identity.ID()] {
			c.anim.start(animationHighlight)
		}
	})
}

func (c *Controller) addChangeListener() {
	c.group.Subscribe(c.row.Events(), grid.EventRowCellChanged, func(e event.Event) {
		if c.destroyed {
			return
		}
		if changed, ok := e.(grid.RowCellChangedEvent); ok && changed.Column == c.column {
			c.RefreshCell(true)
		}
	})
}

func (c *Controller) addCellFocusedListener() {
	update := func(e event.Event) {
		if c.destroyed {
			return
		}
		focused := c.deps.Focus.IsCellFocused(c.identity)
		if !c.focusKnown || focused != c.focused {
			c.gui.SetClass(ClassFocus, focused)
			c.gui.SetClass(ClassNoFocus, !focused)
			c.focused, c.focusKnown = focused, true
		}
		if ev, ok := e.(grid.CellFocusedEvent); ok && focused && ev.ForceBrowserFocus && c.deps.Document != nil {
			c.deps.Document.Focus(c.gui)
		}
	}
	c.group.Subscribe(c.deps.Bus, grid.EventCellFocused, update)
	update(nil)
}

// addFocusOutListener commits an inline edit when native focus moves
// outside the cell.
func (c *Controller) addFocusOutListener() {
	if c.deps.Document == nil {
		return
	}
	c.group.Add(c.deps.Document.OnFocusChange(func(change dom.FocusChange) {
		if c.destroyed || c.state != StateEditingInline {
			return
		}
		if !c.gui.Contains(change.Next) {
			c.stopEditing(false)
		}
	}))
}

// -----------------------------------------------------------------------------
// Skeleton
// -----------------------------------------------------------------------------

func (c *Controller) addClasses() {
	c.gui.AddClass(ClassCell)
	c.gui.SetAttribute(AttrColID, c.column.ID())
	if c.row.Group {
		if c.row.Footer {
			c.gui.AddClass(ClassFooter)
		} else {
			c.gui.AddClass(ClassGroup)
		}
	}
}

func (c *Controller) setInlineEditingClass() {
	inline := c.state == StateEditingInline
	c.gui.SetClass(ClassInlineEditing, inline)
	c.gui.SetClass(ClassNotInlineEditing, !inline)
}

// createParentOfValue builds the checkbox wrapper when the cell has a
// selection checkbox; otherwise the value goes straight into the cell.
func (c *Controller) createParentOfValue() {
	if !c.checkboxSelection {
		c.gui.AddClass(ClassValue)
		c.parentOfValue = c.gui
		return
	}
	c.wrapper = dom.NewElement("span")
	c.wrapper.AddClass(ClassWrapper)
	c.gui.AppendChild(c.wrapper)

	c.wrapper.AppendChild(newSelectionCheckbox(c.row, c.group))

	span := dom.NewElement("span")
	span.AddClass(ClassValue)
	c.wrapper.AppendChild(span)
	c.parentOfValue = span
}
