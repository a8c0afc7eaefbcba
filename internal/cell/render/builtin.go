package render

import (
	"strconv"

	"github.com/spf13/cast"

	"github.com/Iron-Ham/cellgrid/internal/dom"
	"github.com/Iron-Ham/cellgrid/internal/grid"
)

// Classes used by the built-in renderers.
const (
	GroupExpandedClass   = "cg-group-expanded"
	GroupContractedClass = "cg-group-contracted"
	GroupValueClass      = "cg-group-value"

	ChangeDeltaClass     = "cg-value-change-delta"
	ChangeDeltaUpClass   = "cg-value-change-delta-up"
	ChangeDeltaDownClass = "cg-value-change-delta-down"
	ChangeValueClass     = "cg-value-change-value"
	ChangeHighlightClass = "cg-value-change-value-highlight"
)

// Group renders a group row's expand marker followed by the value. Other
// rows render the value alone. Extra["suppressCount"] hides the child count
// given in Extra["count"].
func Group(params grid.CellRendererParams) grid.RenderOutput {
	el := dom.NewElement("span")
	node := params.Node

	if node != nil && node.Group && !node.Footer {
		marker := dom.NewElement("span")
		if node.Expanded {
			marker.AddClass(GroupExpandedClass)
			marker.AppendChild(dom.NewText("▾ "))
		} else {
			marker.AddClass(GroupContractedClass)
			marker.AppendChild(dom.NewText("▸ "))
		}
		el.AppendChild(marker)
	}

	text := FallbackText(params.Value, params.ValueFormatted)
	if node != nil && node.Footer && text != "" {
		text = "Total " + text
	}
	if count, ok := params.Extra["count"]; ok && !cast.ToBool(params.Extra["suppressCount"]) {
		text += " (" + cast.ToString(count) + ")"
	}

	value := dom.NewElement("span")
	value.AddClass(GroupValueClass)
	if text != "" {
		value.AppendChild(dom.NewText(text))
	}
	el.AppendChild(value)
	return grid.RenderElement(el)
}

// AnimateShowChange shows a numeric value with an arrow and the difference
// from the previous value each time it is refreshed.
type AnimateShowChange struct {
	gui   *dom.Element
	delta *dom.Element
	value *dom.Element

	last    float64
	hasLast bool
}

// NewAnimateShowChange creates the component.
func NewAnimateShowChange() grid.CellRenderer {
	return &AnimateShowChange{}
}

// Init builds the GUI and shows the initial value.
func (a *AnimateShowChange) Init(params grid.CellRendererParams) {
	a.gui = dom.NewElement("span")
	a.delta = dom.NewElement("span")
	a.delta.AddClass(ChangeDeltaClass)
	a.value = dom.NewElement("span")
	a.value.AddClass(ChangeValueClass)
	a.gui.AppendChild(a.delta)
	a.gui.AppendChild(a.value)
	a.show(params)
}

// GUI returns the root element.
func (a *AnimateShowChange) GUI() *dom.Element { return a.gui }

// Refresh shows the new value and the change from the last one.
func (a *AnimateShowChange) Refresh(params grid.CellRendererParams) {
	a.show(params)
}

// Destroy clears the GUI.
func (a *AnimateShowChange) Destroy() {
	a.gui.RemoveAllChildren()
}

func (a *AnimateShowChange) show(params grid.CellRendererParams) {
	a.value.SetInnerHTML(FallbackText(params.Value, params.ValueFormatted))

	current, err := cast.ToFloat64E(params.Value)
	if err != nil || params.Value == nil {
		a.delta.SetInnerHTML("")
		a.delta.SetClass(ChangeDeltaUpClass, false)
		a.delta.SetClass(ChangeDeltaDownClass, false)
		a.value.SetClass(ChangeHighlightClass, false)
		a.hasLast = false
		return
	}

	changed := a.hasLast && current != a.last
	if changed {
		diff := current - a.last
		arrow := "↑"
		if diff < 0 {
			arrow, diff = "↓", -diff
		}
		a.delta.SetInnerHTML(arrow + strconv.FormatFloat(diff, 'f', -1, 64))
		a.delta.SetClass(ChangeDeltaUpClass, arrow == "↑")
		a.delta.SetClass(ChangeDeltaDownClass, arrow == "↓")
	}
	a.value.SetClass(ChangeHighlightClass, changed)
	a.last, a.hasLast = current, true
}
