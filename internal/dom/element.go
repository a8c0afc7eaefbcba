// Package dom provides the small retained element tree that grid cells render
// into. Elements carry a class set, inline styles, attributes, children and
// bubbling event listeners; a Document tracks which element holds native
// focus. The terminal host paints the tree; nothing here knows about the
// terminal.
package dom

import (
	"slices"
	"strings"
)

// TextTag is the tag of text nodes.
const TextTag = "#text"

// Element is a node in the element tree. Text nodes are elements with the
// TextTag tag and no children.
type Element struct {
	tag      string
	text     string
	classes  []string
	styles   map[string]string
	attrs    map[string]string
	children []*Element
	parent   *Element

	listeners      map[string][]listener
	nextListenerID int

	// classWrites counts class mutations that actually changed the set.
	classWrites int
}

type listener struct {
	id int
	fn func(*Event)
}

// NewElement creates a detached element.
func NewElement(tag string) *Element {
	return &Element{
		tag:    tag,
		styles: make(map[string]string),
		attrs:  make(map[string]string),
	}
}

// NewText creates a detached text node.
func NewText(text string) *Element {
	el := NewElement(TextTag)
	el.text = text
	return el
}

// Tag returns the element tag.
func (e *Element) Tag() string { return e.tag }

// IsText reports whether the element is a text node.
func (e *Element) IsText() bool { return e.tag == TextTag }

// Text returns the content of a text node. It is empty for elements.
func (e *Element) Text() string { return e.text }

// SetText replaces the content of a text node.
func (e *Element) SetText(text string) { e.text = text }

// -----------------------------------------------------------------------------
// Classes
// -----------------------------------------------------------------------------

// HasClass reports whether the class is present.
func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.classes, name)
}

// AddClass adds the class and reports whether the set changed.
func (e *Element) AddClass(name string) bool {
	if name == "" || e.HasClass(name) {
		return false
	}
	e.classes = append(e.classes, name)
	e.classWrites++
	return true
}

// RemoveClass removes the class and reports whether the set changed.
func (e *Element) RemoveClass(name string) bool {
	i := slices.Index(e.classes, name)
	if i < 0 {
		return false
	}
	e.classes = slices.Delete(e.classes, i, i+1)
	e.classWrites++
	return true
}

// SetClass adds or removes the class depending on on.
func (e *Element) SetClass(name string, on bool) bool {
	if on {
		return e.AddClass(name)
	}
	return e.RemoveClass(name)
}

// Classes returns the classes in insertion order.
func (e *Element) Classes() []string {
	return slices.Clone(e.classes)
}

// ClassName returns the classes joined by spaces.
func (e *Element) ClassName() string {
	return strings.Join(e.classes, " ")
}

// ClassWrites returns how many class mutations changed this element.
func (e *Element) ClassWrites() int { return e.classWrites }

// -----------------------------------------------------------------------------
// Styles and attributes
// -----------------------------------------------------------------------------

// SetStyle sets an inline style property. An empty value removes it.
func (e *Element) SetStyle(prop, value string) {
	if value == "" {
		delete(e.styles, prop)
		return
	}
	e.styles[prop] = value
}

// SetStyles merges the given properties into the inline style.
func (e *Element) SetStyles(props map[string]string) {
	for k, v := range props {
		e.SetStyle(k, v)
	}
}

// Style returns an inline style property.
func (e *Element) Style(prop string) string {
	return e.styles[prop]
}

// SetAttribute sets an attribute.
func (e *Element) SetAttribute(name, value string) {
	e.attrs[name] = value
}

// RemoveAttribute removes an attribute.
func (e *Element) RemoveAttribute(name string) {
	delete(e.attrs, name)
}

// Attribute returns an attribute and whether it is set.
func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// -----------------------------------------------------------------------------
// Tree
// -----------------------------------------------------------------------------

// Parent returns the parent element, or nil when detached.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the direct children.
func (e *Element) Children() []*Element {
	return slices.Clone(e.children)
}

// ChildCount returns the number of direct children.
func (e *Element) ChildCount() int { return len(e.children) }

// AppendChild attaches child as the last child, detaching it from any
// previous parent first.
func (e *Element) AppendChild(child *Element) {
	if child == nil {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
}

// RemoveChild detaches child if it is a direct child.
func (e *Element) RemoveChild(child *Element) {
	i := slices.Index(e.children, child)
	if i < 0 {
		return
	}
	e.children = slices.Delete(e.children, i, i+1)
	child.parent = nil
}

// RemoveAllChildren detaches every child.
func (e *Element) RemoveAllChildren() {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
}

// SetInnerHTML replaces the children with the given markup. Markup is kept as
// a single text node; empty markup leaves the element without children.
func (e *Element) SetInnerHTML(markup string) {
	e.RemoveAllChildren()
	if markup != "" {
		e.AppendChild(NewText(markup))
	}
}

// InnerText returns the concatenated text of all descendant text nodes.
func (e *Element) InnerText() string {
	if e.IsText() {
		return e.text
	}
	var sb strings.Builder
	for _, c := range e.children {
		sb.WriteString(c.InnerText())
	}
	return sb.String()
}

// Contains reports whether other is e or one of its descendants, found by
// walking other's ancestors.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// FindByClass returns the first element in the subtree (including e) that
// has the class.
func (e *Element) FindByClass(name string) *Element {
	if e.HasClass(name) {
		return e
	}
	for _, c := range e.children {
		if found := c.FindByClass(name); found != nil {
			return found
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// Events
// -----------------------------------------------------------------------------

// AddEventListener registers fn for events of the given type reaching this
// element. The returned function removes the listener.
func (e *Element) AddEventListener(eventType string, fn func(*Event)) func() {
	if e.listeners == nil {
		e.listeners = make(map[string][]listener)
	}
	e.nextListenerID++
	id := e.nextListenerID
	e.listeners[eventType] = append(e.listeners[eventType], listener{id: id, fn: fn})

	return func() {
		ls := e.listeners[eventType]
		for i, l := range ls {
			if l.id == id {
				e.listeners[eventType] = slices.Delete(ls, i, i+1)
				return
			}
		}
	}
}

// ListenerCount returns the number of listeners registered for eventType.
func (e *Element) ListenerCount(eventType string) int {
	return len(e.listeners[eventType])
}

// Dispatch delivers ev to this element and then to each ancestor until
// propagation is stopped.
func (e *Element) Dispatch(ev *Event) {
	if ev.Target == nil {
		ev.Target = e
	}
	for n := e; n != nil && !ev.stopped; n = n.parent {
		ls := slices.Clone(n.listeners[ev.Type])
		ev.CurrentTarget = n
		for _, l := range ls {
			l.fn(ev)
			if ev.stopped {
				break
			}
		}
	}
	ev.CurrentTarget = nil
}
