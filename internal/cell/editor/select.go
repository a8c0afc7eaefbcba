package editor

import (
	"slices"

	"github.com/spf13/cast"

	"github.com/Iron-Ham/cellgrid/internal/dom"
	"github.com/Iron-Ham/cellgrid/internal/grid"
	"github.com/Iron-Ham/cellgrid/internal/input"
)

// Select classes.
const (
	SelectClass         = "cg-select"
	OptionClass         = "cg-select-option"
	SelectedOptionClass = "cg-select-option-selected"
)

// Select is a popup list editor. Its choices come from the column's editor
// param "values".
type Select struct {
	params  grid.CellEditorParams
	values  []string
	current int

	gui     *dom.Element
	options []*dom.Element
}

// NewSelect creates the list editor.
func NewSelect() grid.CellEditor { return &Select{} }

// Init builds the option list and selects the current value.
func (s *Select) Init(params grid.CellEditorParams) {
	s.params = params
	s.values = cast.ToStringSlice(params.Extra["values"])
	s.current = slices.Index(s.values, cast.ToString(params.Value))
	if s.current < 0 && len(s.values) > 0 {
		s.current = 0
	}

	s.gui = dom.NewElement("div")
	s.gui.AddClass(SelectClass)
	s.gui.SetAttribute("tabindex", "0")
	for i, v := range s.values {
		opt := dom.NewElement("div")
		opt.AddClass(OptionClass)
		opt.AppendChild(dom.NewText(v))
		opt.AddEventListener(dom.EventClick, func(*dom.Event) {
			s.choose(i)
			s.stop()
		})
		s.gui.AppendChild(opt)
		s.options = append(s.options, opt)
	}
	s.gui.AddEventListener(dom.EventKeyDown, s.onKeyDown)
	s.choose(s.current)
}

// GUI returns the list element.
func (s *Select) GUI() *dom.Element { return s.gui }

// IsPopup reports true; the list is shown in an overlay.
func (s *Select) IsPopup() bool { return true }

// Value returns the selected choice, or the original value when there are
// no choices.
func (s *Select) Value() any {
	if s.current < 0 || s.current >= len(s.values) {
		return s.params.Value
	}
	return s.values[s.current]
}

// AfterGUIAttached focuses the list.
func (s *Select) AfterGUIAttached() {
	if s.params.Document != nil {
		s.params.Document.Focus(s.gui)
	}
}

func (s *Select) onKeyDown(ev *dom.Event) {
	switch ev.Key.Key {
	case input.KeyUp:
		s.choose(s.current - 1)
	case input.KeyDown:
		s.choose(s.current + 1)
	case input.KeyEnter:
		s.stop()
	case input.KeyEscape, input.KeyTab:
		if s.params.OnKeyDown != nil {
			s.params.OnKeyDown(ev.Key)
		}
	default:
		return
	}
	ev.PreventDefault()
	ev.StopPropagation()
}

func (s *Select) choose(i int) {
	if len(s.values) == 0 {
		return
	}
	s.current = max(0, min(i, len(s.values)-1))
	for j, opt := range s.options {
		opt.SetClass(SelectedOptionClass, j == s.current)
	}
}

func (s *Select) stop() {
	if s.params.StopEditing != nil {
		s.params.StopEditing()
	}
}
