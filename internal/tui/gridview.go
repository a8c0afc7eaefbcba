package tui

import (
	"github.com/Iron-Ham/cellgrid/internal/cell"
	"github.com/Iron-Ham/cellgrid/internal/contextmenu"
	"github.com/Iron-Ham/cellgrid/internal/dataset"
	"github.com/Iron-Ham/cellgrid/internal/dom"
	"github.com/Iron-Ham/cellgrid/internal/event"
	"github.com/Iron-Ham/cellgrid/internal/focus"
	"github.com/Iron-Ham/cellgrid/internal/grid"
	"github.com/Iron-Ham/cellgrid/internal/input"
	"github.com/Iron-Ham/cellgrid/internal/logging"
	"github.com/Iron-Ham/cellgrid/internal/popup"
	"github.com/Iron-Ham/cellgrid/internal/rangesel"
	"github.com/Iron-Ham/cellgrid/internal/value"
)

// Element classes of the grid skeleton.
const (
	ClassGrid        = "cg-grid"
	ClassRow         = "cg-row"
	ClassRowFloating = "cg-row-floating"
)

// DefaultColumnWidth is used for columns without a width when none is
// configured.
const DefaultColumnWidth = 16

// ViewOptions configure a GridView. Everything is optional.
type ViewOptions struct {
	Options     *grid.Options
	ColumnWidth int
	Context     any

	Renderers   cell.RendererResolver
	Editors     cell.EditorFactory
	Templates   cell.TemplateSource
	Expressions cell.ExpressionEvaluator
	Scheduler   cell.Scheduler

	// Clipboard replaces the system clipboard for the context menu.
	Clipboard func(string) error
	// Locator reports painted positions for popups. Without one popups
	// stay at the layer origin.
	Locator popup.Locator
	// Viewport reports the screen size popups are kept within.
	Viewport func() (int, int)

	Logger *logging.Logger
}

type viewRow struct {
	node  *grid.RowNode
	el    *dom.Element
	cells []*cell.Controller
}

// GridView owns the element tree and the cell controllers of one grid. It
// moves focus between cells for them and serves the grid and column APIs
// handed to user callbacks.
type GridView struct {
	doc    *dom.Document
	bus    *event.Bus
	opts   *grid.Options
	shared grid.Shared
	logger *logging.Logger

	focus  *focus.Registry
	ranges *rangesel.Registry
	values *value.Service
	popups *popup.Service
	menu   *contextmenu.Service

	root    *dom.Element
	columns []*grid.Column
	byID    map[string]*grid.Column
	byGUI   map[*dom.Element]*cell.Controller
	rows    []*viewRow
	// sections of rows: pinned top, body, pinned bottom
	topCount, bodyCount int

	columnWidth  int
	sectionWidth [3]int

	scrollRow int
	scrollX   int
	width     int
	height    int

	group     *event.Group
	destroyed bool
}

// NewGridView builds the grid for ds and initialises every cell.
func NewGridView(ds *dataset.Dataset, vo ViewOptions) *GridView {
	if vo.Options == nil {
		vo.Options = grid.DefaultOptions()
	}
	if vo.Logger == nil {
		vo.Logger = logging.NopLogger()
	}
	if vo.ColumnWidth <= 0 {
		vo.ColumnWidth = DefaultColumnWidth
	}

	v := &GridView{
		doc:         dom.NewDocument(),
		bus:         event.NewBus(event.WithPanicPropagation(), event.WithLogger(vo.Logger)),
		opts:        vo.Options,
		logger:      vo.Logger.WithComponent("grid"),
		byID:        make(map[string]*grid.Column),
		byGUI:       make(map[*dom.Element]*cell.Controller),
		columnWidth: vo.ColumnWidth,
		group:       event.NewGroup(),
	}
	v.shared = grid.Shared{Context: vo.Context, API: v, ColumnAPI: v}

	v.columns = orderColumns(ds.Columns)
	for _, col := range v.columns {
		v.byID[col.ID()] = col
	}
	v.layout()

	v.focus = focus.NewRegistry(v.bus)
	v.ranges = rangesel.NewRegistry(v.bus, v.columnIDs)
	v.values = value.NewService(v.bus, v.shared)
	v.popups = popup.NewService(v.doc, vo.Locator, vo.Viewport)

	menuOpts := []contextmenu.Option{
		contextmenu.WithLogger(vo.Logger.WithComponent("contextmenu")),
		contextmenu.WithAnchor(v.cellElement),
	}
	if vo.Clipboard != nil {
		menuOpts = append(menuOpts, contextmenu.WithClipboard(vo.Clipboard))
	}
	v.menu = contextmenu.NewService(v.bus, v.doc, v.popups, v, v.values, menuOpts...)

	deps := cell.Deps{
		Bus:         v.bus,
		Document:    v.doc,
		Options:     v.opts,
		Shared:      v.shared,
		Values:      v.values,
		Renderers:   vo.Renderers,
		Editors:     vo.Editors,
		Focus:       v.focus,
		Popups:      v.popups,
		Navigator:   v,
		Ranges:      v.ranges,
		ContextMenu: v.menu,
		Templates:   vo.Templates,
		Expressions: vo.Expressions,
		Scheduler:   vo.Scheduler,
		Logger:      vo.Logger,
	}

	v.root = dom.NewElement("div")
	v.root.AddClass(ClassGrid)
	v.doc.Body().AppendChild(v.root)

	v.topCount, v.bodyCount = len(ds.PinnedTop), len(ds.Rows)
	for _, section := range [][]*grid.RowNode{ds.PinnedTop, ds.Rows, ds.PinnedBottom} {
		for _, node := range section {
			v.rows = append(v.rows, v.buildRow(node, deps))
		}
	}

	v.group.Subscribe(v.bus, grid.EventCellValueChanged, func(e event.Event) {
		if changed, ok := e.(grid.CellValueChangedEvent); ok {
			v.RefreshVolatile(changed.Params.Node)
		}
	})

	v.logger.Debug("grid built", "columns", len(v.columns), "rows", len(v.rows))
	return v
}

// orderColumns creates the live columns in display order: left pinned,
// then unpinned, then right pinned, keeping definition order within each.
func orderColumns(defs []*grid.ColDef) []*grid.Column {
	var sections [3][]*grid.Column
	for _, def := range defs {
		col := grid.NewColumn(def)
		sections[sectionIndex(col.Pinned())] = append(sections[sectionIndex(col.Pinned())], col)
	}
	out := make([]*grid.Column, 0, len(defs))
	for _, s := range sections {
		out = append(out, s...)
	}
	return out
}

// sectionIndex orders sections left to right.
func sectionIndex(p grid.Pinned) int {
	switch p {
	case grid.PinnedLeft:
		return 0
	case grid.PinnedRight:
		return 2
	default:
		return 1
	}
}

func (v *GridView) buildRow(node *grid.RowNode, deps cell.Deps) *viewRow {
	el := dom.NewElement("div")
	el.AddClass(ClassRow)
	if node.IsFloating() {
		el.AddClass(ClassRowFloating)
	}
	v.root.AppendChild(el)

	r := &viewRow{node: node, el: el, cells: make([]*cell.Controller, 0, len(v.columns))}
	for _, col := range v.columns {
		c := cell.New(col, node, node.RowIndex, deps)
		c.Init()
		c.SetParentRow(el)
		el.AppendChild(c.GUI())
		v.byGUI[c.GUI()] = c
		r.cells = append(r.cells, c)
	}
	return r
}

// layout sets each column's width and its offset within its section, then
// the pinned edge flags. Cells follow through their column listeners.
func (v *GridView) layout() {
	var lefts [3]int
	for _, col := range v.columns {
		w := col.ColDef().Width
		if w <= 0 {
			w = v.columnWidth
		}
		col.SetActualWidth(w)
		s := sectionIndex(col.Pinned())
		col.SetLeft(lefts[s])
		lefts[s] += w
	}
	v.sectionWidth = lefts
	grid.UpdatePinnedEdges(v.columns)
}

// SetColumnWidth changes the width of columns that do not set their own.
func (v *GridView) SetColumnWidth(width int) {
	if width <= 0 {
		width = DefaultColumnWidth
	}
	if width == v.columnWidth {
		return
	}
	v.columnWidth = width
	v.layout()
	v.clampScroll()
}

// Close destroys every cell and releases the grid's own subscriptions.
func (v *GridView) Close() {
	if v.destroyed {
		return
	}
	v.destroyed = true
	v.menu.Close()
	for _, r := range v.rows {
		for _, c := range r.cells {
			c.Destroy()
		}
	}
	v.group.Release()
}

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

// Document returns the document holding the grid's elements.
func (v *GridView) Document() *dom.Document { return v.doc }

// Bus returns the grid event bus.
func (v *GridView) Bus() *event.Bus { return v.bus }

// Options returns the live grid options.
func (v *GridView) Options() *grid.Options { return v.opts }

// Popups returns the popup service.
func (v *GridView) Popups() *popup.Service { return v.popups }

// Focus returns the focus registry.
func (v *GridView) Focus() *focus.Registry { return v.focus }

// Ranges returns the range registry.
func (v *GridView) Ranges() *rangesel.Registry { return v.ranges }

// RowCount returns the number of rows across all sections.
func (v *GridView) RowCount() int { return len(v.rows) }

// Cell returns the controller at display position (row, col).
func (v *GridView) Cell(row, col int) (*cell.Controller, bool) {
	if row < 0 || row >= len(v.rows) || col < 0 || col >= len(v.columns) {
		return nil, false
	}
	return v.rows[row].cells[col], true
}

// CellFor returns the controller with identity id.
func (v *GridView) CellFor(id grid.CellIdentity) (*cell.Controller, bool) {
	r := v.position(id.RowIndex, id.Floating)
	c := v.columnIndexByID(id.ColumnID)
	return v.Cell(r, c)
}

// CellAt returns the controller of the cell containing el.
func (v *GridView) CellAt(el *dom.Element) (*cell.Controller, bool) {
	for ; el != nil; el = el.Parent() {
		if c, ok := v.byGUI[el]; ok {
			return c, true
		}
	}
	return nil, false
}

// FocusedCell returns the controller of the focused cell.
func (v *GridView) FocusedCell() (*cell.Controller, bool) {
	id, ok := v.focus.FocusedCell()
	if !ok {
		return nil, false
	}
	return v.CellFor(id)
}

func (v *GridView) cellElement(row *grid.RowNode, col *grid.Column) *dom.Element {
	c, ok := v.CellFor(grid.NewCellIdentity(row.RowIndex, col, row.Floating))
	if !ok {
		return nil
	}
	return c.GUI()
}

func (v *GridView) position(rowIndex int, floating grid.Floating) int {
	var start, end int
	switch floating {
	case grid.FloatingTop:
		start, end = 0, v.topCount
	case grid.FloatingBottom:
		start, end = v.topCount+v.bodyCount, len(v.rows)
	default:
		start, end = v.topCount, v.topCount+v.bodyCount
	}
	if pos := start + rowIndex; rowIndex >= 0 && pos < end {
		return pos
	}
	return -1
}

func (v *GridView) columnIndex(col *grid.Column) int {
	for i, c := range v.columns {
		if c == col {
			return i
		}
	}
	return -1
}

func (v *GridView) columnIndexByID(id string) int {
	for i, c := range v.columns {
		if c.ID() == id {
			return i
		}
	}
	return -1
}

func (v *GridView) columnIDs() []string {
	ids := make([]string, len(v.columns))
	for i, c := range v.columns {
		ids[i] = c.ID()
	}
	return ids
}

// -----------------------------------------------------------------------------
// Grid and column APIs
// -----------------------------------------------------------------------------

// FlashCells runs the highlight animation on cells.
func (v *GridView) FlashCells(cells ...grid.CellIdentity) {
	if len(cells) == 0 {
		return
	}
	v.bus.Publish(grid.NewFlashCellsEvent(cells...))
}

// RefreshRow re-renders every cell of row.
func (v *GridView) RefreshRow(row *grid.RowNode) {
	for _, r := range v.rows {
		if r.node != row {
			continue
		}
		for _, c := range r.cells {
			c.RefreshCell(false)
		}
	}
}

// RefreshCells re-renders every cell.
func (v *GridView) RefreshCells() {
	for _, r := range v.rows {
		for _, c := range r.cells {
			c.RefreshCell(false)
		}
	}
}

// RefreshVolatile re-renders the volatile cells of row, or of every row
// when row is nil.
func (v *GridView) RefreshVolatile(row *grid.RowNode) {
	for _, r := range v.rows {
		if row != nil && r.node != row {
			continue
		}
		for _, c := range r.cells {
			if c.IsVolatile() {
				c.RefreshCell(false)
			}
		}
	}
}

// Column returns the column with id.
func (v *GridView) Column(id string) (*grid.Column, bool) {
	col, ok := v.byID[id]
	return col, ok
}

// Columns returns the columns in display order.
func (v *GridView) Columns() []*grid.Column {
	out := make([]*grid.Column, len(v.columns))
	copy(out, v.columns)
	return out
}

// -----------------------------------------------------------------------------
// Navigation
// -----------------------------------------------------------------------------

// FocusFirst focuses the first cell of the body, or of the first section
// that has rows.
func (v *GridView) FocusFirst() {
	if len(v.rows) == 0 || len(v.columns) == 0 {
		return
	}
	r := v.topCount
	if v.bodyCount == 0 {
		r = 0
	}
	v.focusAt(r, 0)
}

// NavigateToNextCell moves focus one cell in the direction of an arrow key.
// Moving off the edge of the grid does nothing.
func (v *GridView) NavigateToNextCell(key input.Key, rowIndex int, column *grid.Column, floating grid.Floating) {
	r, c := v.position(rowIndex, floating), v.columnIndex(column)
	if r < 0 || c < 0 {
		return
	}
	switch key {
	case input.KeyUp:
		r--
	case input.KeyDown:
		r++
	case input.KeyLeft:
		c--
	case input.KeyRight:
		c++
	default:
		return
	}
	if _, ok := v.Cell(r, c); !ok {
		return
	}
	v.focusAt(r, c)
}

// MoveFocusToNextCell moves focus to the next cell in reading order, or the
// previous one when backwards, continuing onto the following row. With
// startEditing the move skips cells that cannot be edited and starts
// editing the cell it lands on. At the end of the grid nothing happens.
func (v *GridView) MoveFocusToNextCell(rowIndex int, column *grid.Column, floating grid.Floating, backwards, startEditing bool) {
	r, c := v.position(rowIndex, floating), v.columnIndex(column)
	if r < 0 || c < 0 {
		return
	}
	step := 1
	if backwards {
		step = -1
	}
	width := len(v.columns)
	for pos := r*width + c + step; pos >= 0 && pos < len(v.rows)*width; pos += step {
		target := v.rows[pos/width].cells[pos%width]
		if startEditing && !target.IsCellEditable() {
			continue
		}
		v.focusAt(pos/width, pos%width)
		if startEditing {
			target.StartEditingIfEnabled(input.KeyNone, 0)
		}
		return
	}
}

// MovePage moves focus up or down by a page of body rows, staying in the
// focused column.
func (v *GridView) MovePage(down bool) {
	current, ok := v.FocusedCell()
	if !ok || v.bodyCount == 0 {
		v.FocusFirst()
		return
	}
	r := v.position(current.Identity().RowIndex, current.Identity().Floating)
	c := v.columnIndex(current.Column())
	page := max(1, v.bodyCapacity())
	if down {
		r += page
	} else {
		r -= page
	}
	r = max(v.topCount, min(r, v.topCount+v.bodyCount-1))
	v.focusAt(r, c)
}

// focusAt focuses the cell at (r, c) with native focus and makes it the
// only range.
func (v *GridView) focusAt(r, c int) {
	target := v.rows[r].cells[c]
	target.FocusCell(true)
	v.ranges.SetRangeToCell(target.Identity())
	v.EnsureVisible(target.Identity())
}

// ExtendRange stretches the latest range to id, starting one at the
// focused cell when there is none.
func (v *GridView) ExtendRange(id grid.CellIdentity) {
	if len(v.ranges.Ranges()) == 0 {
		if focused, ok := v.focus.FocusedCell(); ok {
			v.ranges.SetRangeToCell(focused)
		}
	}
	v.ranges.ExtendLatestRange(id)
}

// -----------------------------------------------------------------------------
// Scrolling
// -----------------------------------------------------------------------------

// SetViewport records the screen size and keeps the scroll position valid.
func (v *GridView) SetViewport(width, height int) {
	v.width, v.height = width, height
	v.clampScroll()
}

// Viewport returns the screen size.
func (v *GridView) Viewport() (int, int) { return v.width, v.height }

// bodyCapacity is the number of body rows that fit between the header, the
// pinned rows and the status line.
func (v *GridView) bodyCapacity() int {
	pinned := v.topCount + (len(v.rows) - v.topCount - v.bodyCount)
	return max(1, v.height-2-pinned)
}

// centerWidth is the width left for unpinned columns.
func (v *GridView) centerWidth() int {
	return max(0, v.width-v.sectionWidth[0]-v.sectionWidth[2])
}

// ScrollRows scrolls the body by delta rows.
func (v *GridView) ScrollRows(delta int) {
	v.scrollRow += delta
	v.clampScroll()
}

// ScrollColumns scrolls the unpinned columns by delta terminal columns.
func (v *GridView) ScrollColumns(delta int) {
	v.scrollX += delta
	v.clampScroll()
}

// ScrollPosition returns the first visible body row and the horizontal
// offset of the unpinned columns.
func (v *GridView) ScrollPosition() (row, x int) { return v.scrollRow, v.scrollX }

func (v *GridView) clampScroll() {
	v.scrollRow = max(0, min(v.scrollRow, v.bodyCount-v.bodyCapacity()))
	v.scrollX = max(0, min(v.scrollX, v.sectionWidth[1]-v.centerWidth()))
}

// EnsureVisible scrolls so that the cell id is on screen. Pinned rows and
// pinned columns are always visible.
func (v *GridView) EnsureVisible(id grid.CellIdentity) {
	if id.Floating == grid.FloatingNone {
		capacity := v.bodyCapacity()
		if id.RowIndex < v.scrollRow {
			v.scrollRow = id.RowIndex
		} else if id.RowIndex >= v.scrollRow+capacity {
			v.scrollRow = id.RowIndex - capacity + 1
		}
	}
	if col, ok := v.byID[id.ColumnID]; ok && col.Pinned() == grid.PinnedNone {
		left, _ := col.Left()
		right := left + col.ActualWidth()
		if left < v.scrollX {
			v.scrollX = left
		} else if w := v.centerWidth(); right > v.scrollX+w {
			v.scrollX = right - w
		}
	}
	v.clampScroll()
}
