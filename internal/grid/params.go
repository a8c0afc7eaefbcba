package grid

import (
	"github.com/Iron-Ham/cellgrid/internal/dom"
	"github.com/Iron-Ham/cellgrid/internal/input"
)

// CellParams is the common part of every per-cell callback request.
type CellParams struct {
	Node     *RowNode
	Data     any
	Value    any
	RowIndex int
	Column   *Column
	ColDef   *ColDef
	Shared
}

// CheckboxSelectionParams is passed to checkbox selection predicates.
type CheckboxSelectionParams struct {
	CellParams
}

// CellEventParams accompanies click, double-click and context-menu
// notifications.
type CellEventParams struct {
	CellParams
	Event input.MouseEvent
}

// CellStyleParams is passed to CellStyle functions.
type CellStyleParams struct {
	CellParams
}

// CellClassParams is passed to CellClass functions.
type CellClassParams struct {
	CellParams
}

// ClassRuleParams is passed to class rule predicates and exposed to rule
// expressions.
type ClassRuleParams struct {
	CellParams
}

// FormatterParams is passed to cell formatters.
type FormatterParams struct {
	Value    any
	Node     *RowNode
	Column   *Column
	RowIndex int
	Shared
}

// EditableParams is passed to editability predicates.
type EditableParams struct {
	Node   *RowNode
	Data   any
	Column *Column
	ColDef *ColDef
	Shared
}

// ValueGetterParams is passed to value getters. GetValue reads another
// field of the same row.
type ValueGetterParams struct {
	Node     *RowNode
	Data     any
	Column   *Column
	ColDef   *ColDef
	GetValue func(field string) any
	Shared
}

// NewValueParams is passed to new-value handlers. Returning true from the
// handler means the row data was updated.
type NewValueParams struct {
	Node     *RowNode
	Data     any
	OldValue any
	NewValue any
	Column   *Column
	ColDef   *ColDef
	Shared
}

// CellValueChangedParams reports a completed write. NewValue is the value
// read back after the write, which may differ from what the editor produced.
type CellValueChangedParams struct {
	Node     *RowNode
	Data     any
	OldValue any
	NewValue any
	Column   *Column
	ColDef   *ColDef
	Shared
}

// CellRendererParams is passed to renderer functions and to component
// Init and Refresh.
type CellRendererParams struct {
	CellParams
	ValueFormatted string

	// GetValue recomputes the cell value.
	GetValue func() any
	// FormatValue applies the column formatter.
	FormatValue func(value any) string
	// RefreshCell re-renders the cell, optionally with the data-changed flash.
	RefreshCell func(animate bool)

	GridCell      *dom.Element
	ParentOfValue *dom.Element

	// Extra holds the column's renderer params.
	Extra map[string]any
}

// CellEditorParams is passed to CellEditor.Init.
type CellEditorParams struct {
	CellParams
	KeyPress  input.Key
	CharPress rune

	// OnKeyDown hands a key back to the cell, for popup editors whose GUI
	// is outside the cell element.
	OnKeyDown func(input.KeyEvent)
	// StopEditing commits the edit and returns focus to the cell.
	StopEditing func()

	// Document owns native focus; editors focus their input with it.
	Document *dom.Document

	// Extra holds the column's editor params.
	Extra map[string]any
}
