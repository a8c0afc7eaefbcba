// Package popup shows overlay content positioned relative to an anchor
// element, with dismissal on outside clicks.
package popup

import (
	"slices"
	"strconv"

	"github.com/Iron-Ham/cellgrid/internal/dom"
)

// Rect is a screen rectangle in terminal cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Locator reports where an element was last painted.
type Locator interface {
	Bounds(el *dom.Element) (Rect, bool)
}

// LayerClass is the class of the element that holds every popup.
const LayerClass = "cg-popup-layer"

type entry struct {
	content        *dom.Element
	closeOnOutside bool
	onClose        func()
	hidden         bool
}

// Service owns the popup layer.
type Service struct {
	layer    *dom.Element
	locator  Locator
	viewport func() (int, int)
	popups   []*entry
}

// NewService creates a service whose layer is appended to doc's body.
// viewport reports the screen size used to keep popups within bounds.
func NewService(doc *dom.Document, locator Locator, viewport func() (int, int)) *Service {
	layer := dom.NewElement("div")
	layer.AddClass(LayerClass)
	doc.Body().AppendChild(layer)
	return &Service{layer: layer, locator: locator, viewport: viewport}
}

// Layer returns the element popups are mounted into.
func (s *Service) Layer() *dom.Element { return s.layer }

// Popups returns the mounted popup contents, oldest first.
func (s *Service) Popups() []*dom.Element {
	out := make([]*dom.Element, 0, len(s.popups))
	for _, p := range s.popups {
		out = append(out, p.content)
	}
	return out
}

// AddAsModalPopup mounts content. The returned function hides it; onClose
// runs once, whether the popup is hidden by that function or dismissed by
// an outside click.
func (s *Service) AddAsModalPopup(content *dom.Element, closeOnOutside bool, onClose func()) func() {
	e := &entry{content: content, closeOnOutside: closeOnOutside, onClose: onClose}
	s.popups = append(s.popups, e)
	s.layer.AppendChild(content)
	return func() { s.hide(e) }
}

func (s *Service) hide(e *entry) {
	if e.hidden {
		return
	}
	e.hidden = true
	s.layer.RemoveChild(e.content)
	if i := slices.Index(s.popups, e); i >= 0 {
		s.popups = slices.Delete(s.popups, i, i+1)
	}
	if e.onClose != nil {
		e.onClose()
	}
}

// HandleMouseDown dismisses popups opened with closeOnOutside when target
// lies outside them. It reports whether any popup was dismissed.
func (s *Service) HandleMouseDown(target *dom.Element) bool {
	var dismiss []*entry
	for _, p := range s.popups {
		if !p.closeOnOutside {
			continue
		}
		if target != nil && p.content.Contains(target) {
			continue
		}
		dismiss = append(dismiss, p)
	}
	for _, p := range dismiss {
		s.hide(p)
	}
	return len(dismiss) > 0
}

// PositionOver places content at anchor's top-left corner. With
// keepWithinBounds the position is clamped so content stays on screen. The
// position is written as "left" and "top" styles.
func (s *Service) PositionOver(anchor, content *dom.Element, keepWithinBounds bool) {
	if s.locator == nil {
		return
	}
	at, ok := s.locator.Bounds(anchor)
	if !ok {
		return
	}
	x, y := at.X, at.Y
	if keepWithinBounds && s.viewport != nil {
		w, h := s.viewport()
		size, ok := s.locator.Bounds(content)
		if !ok {
			size = Rect{Width: at.Width, Height: at.Height}
		}
		x = clamp(x, 0, w-size.Width)
		y = clamp(y, 0, h-size.Height)
	}
	content.SetStyle("left", strconv.Itoa(x))
	content.SetStyle("top", strconv.Itoa(y))
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return max(lo, min(v, hi))
}
