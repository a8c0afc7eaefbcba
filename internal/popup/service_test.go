package popup

import (
	"testing"

	"github.com/Iron-Ham/cellgrid/internal/dom"
)

type fakeLocator map[*dom.Element]Rect

func (f fakeLocator) Bounds(el *dom.Element) (Rect, bool) {
	r, ok := f[el]
	return r, ok
}

func newService(loc fakeLocator) *Service {
	return NewService(dom.NewDocument(), loc, func() (int, int) { return 80, 24 })
}

func TestService_HideRunsOnCloseOnce(t *testing.T) {
	svc := newService(nil)
	content := dom.NewElement("div")

	closed := 0
	hide := svc.AddAsModalPopup(content, true, func() { closed++ })
	if content.Parent() != svc.Layer() {
		t.Fatal("content should be mounted in the layer")
	}

	hide()
	hide()
	if closed != 1 {
		t.Errorf("onClose ran %d times, want 1", closed)
	}
	if content.Parent() != nil || len(svc.Popups()) != 0 {
		t.Error("content should be detached after hide")
	}
}

func TestService_HandleMouseDown(t *testing.T) {
	svc := newService(nil)

	modal := dom.NewElement("div")
	inner := dom.NewElement("span")
	modal.AppendChild(inner)
	sticky := dom.NewElement("div")

	modalClosed, stickyClosed := 0, 0
	svc.AddAsModalPopup(modal, true, func() { modalClosed++ })
	svc.AddAsModalPopup(sticky, false, func() { stickyClosed++ })

	if svc.HandleMouseDown(inner) {
		t.Error("a click inside the popup should not dismiss it")
	}
	if !svc.HandleMouseDown(dom.NewElement("div")) {
		t.Error("an outside click should dismiss the modal popup")
	}
	if svc.HandleMouseDown(nil) {
		t.Error("nothing left to dismiss")
	}
	if modalClosed != 1 || stickyClosed != 0 {
		t.Errorf("modalClosed=%d stickyClosed=%d", modalClosed, stickyClosed)
	}
}

func TestService_PositionOver(t *testing.T) {
	anchor := dom.NewElement("div")
	content := dom.NewElement("div")

	tests := []struct {
		name    string
		anchor  Rect
		content Rect
		keep    bool
		left    string
		top     string
	}{
		{"inside", Rect{X: 10, Y: 5, Width: 8, Height: 1}, Rect{Width: 20, Height: 6}, true, "10", "5"},
		{"clamped right and bottom", Rect{X: 70, Y: 22, Width: 8, Height: 1}, Rect{Width: 20, Height: 6}, true, "60", "18"},
		{"unclamped", Rect{X: 70, Y: 22, Width: 8, Height: 1}, Rect{Width: 20, Height: 6}, false, "70", "22"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(fakeLocator{anchor: tt.anchor, content: tt.content})
			svc.PositionOver(anchor, content, tt.keep)
			if got := content.Style("left"); got != tt.left {
				t.Errorf("left = %q, want %q", got, tt.left)
			}
			if got := content.Style("top"); got != tt.top {
				t.Errorf("top = %q, want %q", got, tt.top)
			}
		})
	}
}
