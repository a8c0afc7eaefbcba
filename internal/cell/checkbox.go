package cell

import (
	"github.com/Iron-Ham/cellgrid/internal/dom"
	"github.com/Iron-Ham/cellgrid/internal/event"
	"github.com/Iron-Ham/cellgrid/internal/grid"
)

// Checkbox classes.
const (
	checkboxClass        = "cg-selection-checkbox"
	checkboxCheckedClass = "cg-selection-checkbox-checked"
)

// newSelectionCheckbox creates a checkbox mirroring row's selection.
// Clicking it toggles the selection. Its subscriptions are added to group.
func newSelectionCheckbox(row *grid.RowNode, group *event.Group) *dom.Element {
	el := dom.NewElement("input")
	el.SetAttribute("type", "checkbox")
	el.AddClass(checkboxClass)

	update := func() {
		checked := row.IsSelected()
		el.SetClass(checkboxCheckedClass, checked)
		if checked {
			el.SetAttribute("checked", "")
			el.SetInnerHTML("[x]")
		} else {
			el.RemoveAttribute("checked")
			el.SetInnerHTML("[ ]")
		}
	}

	group.Subscribe(row.Events(), grid.EventRowSelectedChanged, func(event.Event) { update() })
	group.Add(el.AddEventListener(dom.EventClick, func(ev *dom.Event) {
		ev.StopPropagation()
		row.SetSelected(!row.IsSelected())
	}))
	update()
	return el
}
