package cell

import (
	"time"

	"github.com/Iron-Ham/cellgrid/internal/dom"
	"github.com/Iron-Ham/cellgrid/internal/event"
	"github.com/Iron-Ham/cellgrid/internal/grid"
	"github.com/Iron-Ham/cellgrid/internal/input"
	"github.com/Iron-Ham/cellgrid/internal/logging"
)

// ValueService reads and writes cell values.
type ValueService interface {
	GetValue(column *grid.Column, data any, row *grid.RowNode) any
	SetValue(row *grid.RowNode, column *grid.Column, newValue any) error
}

// RendererResolver looks up renderers.
type RendererResolver interface {
	Resolve(ref grid.RendererRef) (grid.Renderer, error)
}

// EditorFactory creates editors.
type EditorFactory interface {
	Create(ref grid.EditorRef) (grid.CellEditor, error)
}

// FocusRegistry holds the logically focused cell.
type FocusRegistry interface {
	IsCellFocused(cell grid.CellIdentity) bool
	SetFocusedCell(cell grid.CellIdentity, forceBrowserFocus bool)
}

// RangeRegistry holds range selections.
type RangeRegistry interface {
	CellRangeCount(cell grid.CellIdentity) int
	IsCellInAnyRange(cell grid.CellIdentity) bool
	SetRangeToCell(cell grid.CellIdentity)
}

// PopupService shows overlays.
type PopupService interface {
	AddAsModalPopup(content *dom.Element, closeOnOutside bool, onClose func()) func()
	PositionOver(anchor, content *dom.Element, keepWithinBounds bool)
}

// ContextMenuService shows the cell context menu.
type ContextMenuService interface {
	ShowMenu(row *grid.RowNode, column *grid.Column, value any, ev input.MouseEvent)
}

// Navigator moves focus between cells.
type Navigator interface {
	NavigateToNextCell(key input.Key, rowIndex int, column *grid.Column, floating grid.Floating)
	MoveFocusToNextCell(rowIndex int, column *grid.Column, floating grid.Floating, backwards, startEditing bool)
}

// TemplateSource loads templates by URL.
type TemplateSource interface {
	Template(url string, onReady func()) (string, bool)
}

// ExpressionEvaluator evaluates string class rules.
type ExpressionEvaluator interface {
	Evaluate(expr string, params grid.ClassRuleParams) (bool, error)
}

// Scheduler runs fn on the UI goroutine after d. The returned function
// cancels it if it has not run yet.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// Deps are the grid services a cell works with. Ranges, ContextMenu,
// Templates and Expressions are optional. Without a Scheduler cells do not
// animate.
type Deps struct {
	Bus      *event.Bus
	Document *dom.Document
	Options  *grid.Options
	Shared   grid.Shared

	Values    ValueService
	Renderers RendererResolver
	Editors   EditorFactory
	Focus     FocusRegistry
	Popups    PopupService
	Navigator Navigator

	Ranges      RangeRegistry
	ContextMenu ContextMenuService
	Templates   TemplateSource
	Expressions ExpressionEvaluator

	Scheduler Scheduler
	Logger    *logging.Logger
}
