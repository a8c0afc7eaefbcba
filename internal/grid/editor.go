package grid

import (
	"fmt"

	"github.com/Iron-Ham/cellgrid/internal/dom"
	"gopkg.in/yaml.v3"
)

// DefaultEditorName is used for columns that do not name an editor.
const DefaultEditorName = "text"

// CellEditor edits one cell value. GUI must return the element to mount;
// an editor returning nil cannot be mounted and the edit is abandoned.
type CellEditor interface {
	Init(params CellEditorParams)
	GUI() *dom.Element
	Value() any
}

// PopupEditor is implemented by editors that want to be shown in an
// overlay instead of inside the cell.
type PopupEditor interface {
	IsPopup() bool
}

// GUIAttacher is implemented by editors that need a hook once their GUI is
// in the tree, typically to take native focus.
type GUIAttacher interface {
	AfterGUIAttached()
}

// IsPopup reports whether ed asks to be shown in an overlay.
func IsPopup(ed CellEditor) bool {
	p, ok := ed.(PopupEditor)
	return ok && p.IsPopup()
}

// EditorRef is a column's reference to an editor: a registered name or a
// component factory. The zero value means the default editor.
type EditorRef struct {
	kind    refKind
	name    string
	factory func() CellEditor
}

// EditorNamed refers to an editor registered under name.
func EditorNamed(name string) EditorRef {
	if name == "" {
		return EditorRef{}
	}
	return EditorRef{kind: refNamed, name: name}
}

// EditorComponent refers directly to an editor factory.
func EditorComponent(factory func() CellEditor) EditorRef {
	return EditorRef{kind: refDirect, factory: factory}
}

// IsZero reports whether no editor is configured.
func (r EditorRef) IsZero() bool { return r.kind == refNone }

// Name returns the registered name, DefaultEditorName for the zero value.
func (r EditorRef) Name() (string, bool) {
	switch r.kind {
	case refNone:
		return DefaultEditorName, true
	case refNamed:
		return r.name, true
	default:
		return "", false
	}
}

// Factory returns the factory of a direct reference.
func (r EditorRef) Factory() (func() CellEditor, bool) {
	return r.factory, r.kind == refDirect
}

// UnmarshalYAML accepts a registered editor name.
func (r *EditorRef) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return fmt.Errorf("cell editor: expected a name: %w", err)
	}
	*r = EditorNamed(name)
	return nil
}
