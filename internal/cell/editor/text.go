package editor

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/spf13/cast"

	"github.com/Iron-Ham/cellgrid/internal/dom"
	"github.com/Iron-Ham/cellgrid/internal/grid"
	"github.com/Iron-Ham/cellgrid/internal/input"
)

// InputClass is the class of built-in editor inputs.
const InputClass = "cg-cell-edit"

// Text is a single-line text editor over a bubbles text input.
type Text struct {
	popup  bool
	params grid.CellEditorParams
	model  textinput.Model

	gui     *dom.Element
	input   *dom.Element
	removes []func()
}

// NewText creates the inline text editor.
func NewText() grid.CellEditor { return &Text{} }

// NewPopupText creates the text editor shown in an overlay.
func NewPopupText() grid.CellEditor { return &Text{popup: true} }

// Init seeds the input. A typed character replaces the content, Backspace
// and Delete start empty, anything else starts from the current value. The
// caret is placed at the end.
func (t *Text) Init(params grid.CellEditorParams) {
	t.params = params

	ti := textinput.New()
	ti.Prompt = ""
	if n, ok := params.Extra["maxLength"]; ok {
		ti.CharLimit = cast.ToInt(n)
	}
	if w := params.Column; w != nil && w.ActualWidth() > 0 {
		ti.Width = w.ActualWidth()
	}
	ti.Focus()

	switch {
	case params.CharPress != 0:
		ti.SetValue(string(params.CharPress))
	case params.KeyPress == input.KeyBackspace || params.KeyPress == input.KeyDelete:
		ti.SetValue("")
	case params.Value != nil:
		ti.SetValue(cast.ToString(params.Value))
	}
	ti.CursorEnd()
	t.model = ti

	t.input = dom.NewElement("input")
	t.input.AddClass(InputClass)
	t.input.SetAttribute("tabindex", "0")
	t.removes = append(t.removes,
		t.input.AddEventListener(dom.EventKeyDown, t.onKeyDown),
		t.input.AddEventListener(dom.EventKeyPress, t.onKeyPress),
	)

	if t.popup {
		t.gui = dom.NewElement("div")
		t.gui.AddClass("cg-popup-editor")
		t.gui.AppendChild(t.input)
	} else {
		t.gui = t.input
	}
	t.sync()
}

// GUI returns the editor element.
func (t *Text) GUI() *dom.Element { return t.gui }

// IsPopup reports whether this is the popup variant.
func (t *Text) IsPopup() bool { return t.popup }

// Value returns the text typed so far.
func (t *Text) Value() any { return t.model.Value() }

// AfterGUIAttached gives the input native focus.
func (t *Text) AfterGUIAttached() {
	if t.params.Document != nil {
		t.params.Document.Focus(t.input)
	}
}

// Destroy removes the input listeners.
func (t *Text) Destroy() {
	for _, remove := range t.removes {
		remove()
	}
	t.removes = nil
}

func (t *Text) onKeyDown(ev *dom.Event) {
	switch ev.Key.Key {
	case input.KeyBackspace, input.KeyDelete, input.KeyHome, input.KeyEnd:
		t.update(ev.Key)
		ev.StopPropagation()
	case input.KeyEnter, input.KeyEscape, input.KeyTab, input.KeyF2,
		input.KeyUp, input.KeyDown, input.KeyLeft, input.KeyRight:
		// The popup is outside the cell, so hand the key back explicitly.
		if t.popup && t.params.OnKeyDown != nil {
			ev.StopPropagation()
			ev.PreventDefault()
			t.params.OnKeyDown(ev.Key)
		}
	}
}

func (t *Text) onKeyPress(ev *dom.Event) {
	if ev.Key.Key != input.KeyRune || ev.Key.Ctrl || ev.Key.Meta {
		return
	}
	t.update(ev.Key)
	ev.StopPropagation()
}

func (t *Text) update(key input.KeyEvent) {
	t.model, _ = t.model.Update(input.ToKeyMsg(key))
	t.sync()
}

func (t *Text) sync() {
	t.input.SetInnerHTML(t.model.View())
}
