package cell

import (
	"github.com/Iron-Ham/cellgrid/internal/dom"
	"github.com/Iron-Ham/cellgrid/internal/grid"
	"github.com/Iron-Ham/cellgrid/internal/input"
)

func (c *Controller) addMouseListeners() {
	c.group.Add(c.gui.AddEventListener(dom.EventMouseDown, c.onMouseDown))
	c.group.Add(c.gui.AddEventListener(dom.EventClick, c.onCellClicked))
	c.group.Add(c.gui.AddEventListener(dom.EventDoubleClick, c.onCellDoubleClicked))
	c.group.Add(c.gui.AddEventListener(dom.EventContextMenu, c.onContextMenu))
}

func (c *Controller) eventParams(ev input.MouseEvent) grid.CellEventParams {
	return grid.CellEventParams{CellParams: c.cellParams(), Event: ev}
}

// onMouseDown focuses the cell without taking native focus, so that an
// input inside the cell can still receive it. A cell outside every range
// becomes the only range.
func (c *Controller) onMouseDown(*dom.Event) {
	if c.destroyed {
		return
	}
	c.FocusCell(false)
	if c.deps.Ranges != nil && !c.deps.Ranges.IsCellInAnyRange(c.identity) {
		c.deps.Ranges.SetRangeToCell(c.identity)
	}
}

func (c *Controller) onCellClicked(ev *dom.Event) {
	if c.destroyed {
		return
	}
	params := c.eventParams(ev.Mouse)
	c.deps.Bus.Publish(grid.NewCellMouseEvent(grid.EventCellClicked, params))
	if fn := c.column.ColDef().OnCellClicked; fn != nil {
		fn(params)
	}
	if c.deps.Options.SingleClickEdit {
		c.StartEditingIfEnabled(input.KeyNone, 0)
	}
}

func (c *Controller) onCellDoubleClicked(ev *dom.Event) {
	if c.destroyed {
		return
	}
	params := c.eventParams(ev.Mouse)
	c.deps.Bus.Publish(grid.NewCellMouseEvent(grid.EventCellDoubleClicked, params))
	if fn := c.column.ColDef().OnCellDoubleClicked; fn != nil {
		fn(params)
	}
	if !c.deps.Options.SingleClickEdit {
		c.StartEditingIfEnabled(input.KeyNone, 0)
	}
}

// onContextMenu leaves ctrl and meta clicks to the host.
func (c *Controller) onContextMenu(ev *dom.Event) {
	if c.destroyed || ev.Mouse.Ctrl || ev.Mouse.Meta {
		return
	}
	params := c.eventParams(ev.Mouse)
	c.deps.Bus.Publish(grid.NewCellMouseEvent(grid.EventCellContextMenu, params))
	if fn := c.column.ColDef().OnCellContextMenu; fn != nil {
		fn(params)
	}
	if c.deps.ContextMenu != nil && !c.deps.Options.SuppressContextMenu {
		c.deps.ContextMenu.ShowMenu(c.row, c.column, c.value, ev.Mouse)
		ev.PreventDefault()
	}
}
