package dom

import (
	"slices"

	"github.com/Iron-Ham/cellgrid/internal/input"
)

// Event types dispatched through the tree.
const (
	EventKeyDown     = "keydown"
	EventKeyPress    = "keypress"
	EventFocusIn     = "focusin"
	EventFocusOut    = "focusout"
	EventMouseDown   = "mousedown"
	EventClick       = "click"
	EventDoubleClick = "dblclick"
	EventContextMenu = "contextmenu"
)

// Event is delivered to element listeners.
type Event struct {
	Type          string
	Target        *Element
	CurrentTarget *Element
	// RelatedTarget is the element gaining focus for focusout and the element
	// losing it for focusin.
	RelatedTarget *Element

	Key   input.KeyEvent
	Mouse input.MouseEvent

	defaultPrevented bool
	stopped          bool
}

// PreventDefault marks the event so the host skips its default handling.
func (ev *Event) PreventDefault() { ev.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (ev *Event) DefaultPrevented() bool { return ev.defaultPrevented }

// StopPropagation stops delivery to further ancestors.
func (ev *Event) StopPropagation() { ev.stopped = true }

// FocusChange describes a move of native focus.
type FocusChange struct {
	Previous *Element
	Next     *Element
}

// Document owns native focus for a tree of elements.
type Document struct {
	body   *Element
	active *Element

	focusListeners []focusListener
	nextID         int
}

type focusListener struct {
	id int
	fn func(FocusChange)
}

// NewDocument creates a document with an empty body.
func NewDocument() *Document {
	return &Document{body: NewElement("body")}
}

// Body returns the root element.
func (d *Document) Body() *Element { return d.body }

// ActiveElement returns the element holding native focus, or nil.
func (d *Document) ActiveElement() *Element { return d.active }

// Focus moves native focus to el. Focusing the active element is a no-op.
// focusout is dispatched on the previous element, then focusin on the new
// one, then focus-change listeners run.
func (d *Document) Focus(el *Element) {
	if el == d.active {
		return
	}
	prev := d.active
	d.active = el

	if prev != nil {
		prev.Dispatch(&Event{Type: EventFocusOut, RelatedTarget: el})
	}
	if el != nil {
		el.Dispatch(&Event{Type: EventFocusIn, RelatedTarget: prev})
	}

	change := FocusChange{Previous: prev, Next: el}
	for _, l := range slices.Clone(d.focusListeners) {
		l.fn(change)
	}
}

// Blur clears native focus.
func (d *Document) Blur() { d.Focus(nil) }

// OnFocusChange registers fn for every move of native focus. The returned
// function removes the listener.
func (d *Document) OnFocusChange(fn func(FocusChange)) func() {
	d.nextID++
	id := d.nextID
	d.focusListeners = append(d.focusListeners, focusListener{id: id, fn: fn})
	return func() {
		for i, l := range d.focusListeners {
			if l.id == id {
				d.focusListeners = slices.Delete(d.focusListeners, i, i+1)
				return
			}
		}
	}
}

// FocusListenerCount returns the number of registered focus-change listeners.
func (d *Document) FocusListenerCount() int { return len(d.focusListeners) }

// DispatchKey delivers a key press to the focused element (or the body):
// keydown first and, for character keys whose keydown was not prevented,
// keypress. It reports whether any listener prevented the default action.
func (d *Document) DispatchKey(key input.KeyEvent) bool {
	target := d.active
	if target == nil {
		target = d.body
	}

	down := &Event{Type: EventKeyDown, Key: key}
	target.Dispatch(down)
	if down.DefaultPrevented() {
		return true
	}
	if key.Key != input.KeyRune {
		return false
	}

	press := &Event{Type: EventKeyPress, Key: key}
	target.Dispatch(press)
	return press.DefaultPrevented()
}

// DispatchMouse delivers a mouse event to target. The event type is the
// mouse kind's name. It reports whether any listener prevented the default
// action.
func (d *Document) DispatchMouse(target *Element, mouse input.MouseEvent) bool {
	if target == nil {
		target = d.body
	}
	ev := &Event{Type: mouse.Kind.String(), Mouse: mouse}
	target.Dispatch(ev)
	return ev.DefaultPrevented()
}
