package editor

import (
	"github.com/Iron-Ham/cellgrid/internal/dom"
	"github.com/Iron-Ham/cellgrid/internal/errors"
	"github.com/Iron-Ham/cellgrid/internal/grid"
)

// Popups is the overlay contract popup editors are shown through.
type Popups interface {
	AddAsModalPopup(content *dom.Element, closeOnOutside bool, onClose func()) func()
	PositionOver(anchor, content *dom.Element, keepWithinBounds bool)
}

// Host places editors.
type Host struct {
	popups Popups
}

// NewHost creates a host. popups may be nil when no popup editor is used;
// mounting a popup editor then fails.
func NewHost(popups Popups) *Host {
	return &Host{popups: popups}
}

// Session is one mounted editor.
type Session struct {
	editor  grid.CellEditor
	gui     *dom.Element
	popup   bool
	hide    func()
	mounted bool
}

// Mount places ed for cell. Inline editors replace every child of cell;
// popup editors are shown in an overlay over cell, and onDismiss runs when
// the overlay closes. An editor without a GUI is a configuration error and
// nothing is changed.
func (h *Host) Mount(cell *dom.Element, ed grid.CellEditor, onDismiss func()) (*Session, error) {
	gui := ed.GUI()
	if gui == nil {
		return nil, errors.NewConfigurationError("editor returned no GUI", errors.ErrEditorMissingGUI)
	}

	s := &Session{editor: ed, gui: gui, popup: grid.IsPopup(ed), mounted: true}
	if s.popup {
		if h.popups == nil {
			return nil, errors.NewConfigurationError("popup editor without a popup service", errors.ErrEditorMissingGUI)
		}
		s.hide = h.popups.AddAsModalPopup(gui, true, onDismiss)
		h.popups.PositionOver(cell, gui, true)
		return s, nil
	}

	cell.RemoveAllChildren()
	cell.AppendChild(gui)
	return s, nil
}

// Editor returns the mounted editor.
func (s *Session) Editor() grid.CellEditor { return s.editor }

// GUI returns the mounted element.
func (s *Session) GUI() *dom.Element { return s.gui }

// IsPopup reports whether the editor is in an overlay.
func (s *Session) IsPopup() bool { return s.popup }

// Mounted reports whether Unmount has not run yet.
func (s *Session) Mounted() bool { return s.mounted }

// Value returns the editor's current value.
func (s *Session) Value() any { return s.editor.Value() }

// AfterAttached runs the editor's post-mount hook.
func (s *Session) AfterAttached() {
	if a, ok := s.editor.(grid.GUIAttacher); ok {
		a.AfterGUIAttached()
	}
}

// Unmount destroys the editor and closes its overlay. Inline GUIs are left
// for the caller to replace. Calling it again is a no-op.
func (s *Session) Unmount() {
	if !s.mounted {
		return
	}
	s.mounted = false
	if d, ok := s.editor.(grid.Destroyer); ok {
		d.Destroy()
	}
	if s.hide != nil {
		hide := s.hide
		s.hide = nil
		hide()
	}
}
