package cell

import (
	"github.com/Iron-Ham/cellgrid/internal/dom"
	"github.com/Iron-Ham/cellgrid/internal/grid"
	"github.com/Iron-Ham/cellgrid/internal/input"
)

// IsCellEditable reports whether an edit can start: the cell is not
// already editing, the row is not a group row, and the column allows it.
func (c *Controller) IsCellEditable() bool {
	if c.state != StateDisplaying {
		return false
	}
	if c.row.Group {
		return false
	}
	return c.column.IsCellEditable(c.row, c.deps.Shared)
}

// StartEditingIfEnabled mounts an editor seeded with the key or character
// that started the edit. It reports whether editing started. Editor
// configuration problems are logged and leave the cell displaying.
func (c *Controller) StartEditingIfEnabled(key input.Key, char rune) bool {
	if c.destroyed || !c.IsCellEditable() {
		return false
	}

	def := c.column.ColDef()
	ed, err := c.deps.Editors.Create(def.CellEditor)
	if err != nil {
		c.logger.LogError("cell editor unavailable", err)
		return false
	}
	ed.Init(c.editorParams(key, char))

	session, err := c.host.Mount(c.gui, ed, c.onPopupEditorClosed)
	if err != nil {
		c.logger.LogError("cell editor not mounted", err)
		if d, ok := ed.(grid.Destroyer); ok {
			d.Destroy()
		}
		return false
	}

	c.session = session
	if session.IsPopup() {
		c.state = StateEditingInPopup
	} else {
		c.state = StateEditingInline
	}
	c.setInlineEditingClass()
	session.AfterAttached()
	return true
}

func (c *Controller) editorParams(key input.Key, char rune) grid.CellEditorParams {
	params := c.cellParams()
	params.Value = c.getValue()
	return grid.CellEditorParams{
		CellParams:  params,
		KeyPress:    key,
		CharPress:   char,
		OnKeyDown:   func(k input.KeyEvent) { c.handleKeyDown(&dom.Event{Type: dom.EventKeyDown, Key: k}) },
		StopEditing: c.stopEditingAndFocus,
		Document:    c.deps.Document,
		Extra:       c.column.ColDef().CellEditorParams,
	}
}

// StopEditing commits or discards the current edit. It does nothing when
// the cell is not editing.
func (c *Controller) StopEditing(cancel bool) {
	c.stopEditing(cancel)
}

func (c *Controller) stopEditing(cancel bool) {
	if c.state == StateDisplaying || c.session == nil {
		return
	}
	session := c.session
	c.session = nil
	c.state = StateDisplaying

	newValue := session.Value()
	if !cancel {
		if err := c.deps.Values.SetValue(c.row, c.column, newValue); err != nil {
			c.logger.LogError("cell value not written", err)
		}
		c.value = c.getValue()
	}

	session.Unmount()
	if !session.IsPopup() {
		c.gui.RemoveAllChildren()
		if c.checkboxSelection {
			c.gui.AppendChild(c.wrapper)
		}
		// The editor replaced the rendered content, so rebuild it.
		c.destroyRenderer()
	}

	c.setInlineEditingClass()
	c.RefreshCell(false)
}

// stopEditingAndFocus is handed to editors that finish on their own, such
// as a list editor after a choice.
func (c *Controller) stopEditingAndFocus() {
	c.stopEditing(false)
	c.FocusCell(true)
}

// onPopupEditorClosed runs when the overlay closes. If the edit already
// stopped there is nothing to do. Focus returns to the cell only when it is
// still the focused cell.
func (c *Controller) onPopupEditorClosed() {
	if c.destroyed || c.state == StateDisplaying {
		return
	}
	c.stopEditing(true)
	if c.deps.Focus.IsCellFocused(c.identity) {
		c.FocusCell(true)
	}
}

// -----------------------------------------------------------------------------
// Keyboard
// -----------------------------------------------------------------------------

func (c *Controller) addKeyListeners() {
	c.group.Add(c.gui.AddEventListener(dom.EventKeyDown, c.handleKeyDown))
	c.group.Add(c.gui.AddEventListener(dom.EventKeyPress, c.handleKeyPress))
}

func (c *Controller) handleKeyDown(ev *dom.Event) {
	if c.destroyed {
		return
	}
	key := ev.Key
	switch Route(key, c.IsEditing()) {
	case ActionStartEdit:
		c.StartEditingIfEnabled(key.Key, 0)
	case ActionStopEdit:
		c.stopEditing(false)
		c.FocusCell(true)
	case ActionCancelEdit:
		c.stopEditing(true)
		c.FocusCell(true)
	case ActionTab:
		editNext := c.IsEditing()
		if editNext {
			c.stopEditing(false)
		}
		if c.deps.Navigator != nil {
			c.deps.Navigator.MoveFocusToNextCell(c.rowIndex, c.column, c.row.Floating, key.Shift, editNext)
		}
		ev.PreventDefault()
	case ActionNavigate:
		if c.IsEditing() {
			c.stopEditing(false)
		}
		if c.deps.Navigator != nil {
			c.deps.Navigator.NavigateToNextCell(key.Key, c.rowIndex, c.column, c.row.Floating)
		}
		ev.PreventDefault()
	}
}

func (c *Controller) handleKeyPress(ev *dom.Event) {
	if c.destroyed {
		return
	}
	switch RoutePress(ev.Key, c.IsEditing()) {
	case ActionToggleSelect:
		if c.deps.Options.RowSelection {
			c.row.SetSelected(!c.row.IsSelected())
		}
		ev.PreventDefault()
	case ActionStartEdit:
		c.StartEditingIfEnabled(input.KeyNone, ev.Key.Rune)
		ev.PreventDefault()
	}
}
