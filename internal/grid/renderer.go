package grid

import (
	"fmt"

	"github.com/Iron-Ham/cellgrid/internal/dom"
	"gopkg.in/yaml.v3"
)

// RenderOutput is what a renderer produced: nothing, an element to append,
// or markup to set as the inner content.
type RenderOutput struct {
	element *dom.Element
	markup  string
}

// RenderNothing returns an empty output.
func RenderNothing() RenderOutput { return RenderOutput{} }

// RenderElement returns an element output. A nil element renders nothing.
func RenderElement(el *dom.Element) RenderOutput { return RenderOutput{element: el} }

// RenderMarkup returns a markup output. Empty markup renders nothing.
func RenderMarkup(markup string) RenderOutput { return RenderOutput{markup: markup} }

// IsEmpty reports whether there is nothing to insert.
func (o RenderOutput) IsEmpty() bool { return o.element == nil && o.markup == "" }

// Element returns the element output, or nil.
func (o RenderOutput) Element() *dom.Element { return o.element }

// Markup returns the markup output, or "".
func (o RenderOutput) Markup() string { return o.markup }

// RenderFunc is a plain-function renderer. It is called once per
// population and its output used directly.
type RenderFunc func(params CellRendererParams) RenderOutput

// CellRenderer is a component renderer with a lifecycle: construct,
// optionally Wire, Init, GUI, then optionally Refresh and Destroy.
type CellRenderer interface {
	Init(params CellRendererParams)
	GUI() *dom.Element
}

// Refresher is implemented by renderers that can update in place. When the
// mounted renderer is a Refresher, a cell refresh calls Refresh instead of
// rebuilding the cell content.
type Refresher interface {
	Refresh(params CellRendererParams)
}

// Destroyer is implemented by renderers and editors that hold resources.
type Destroyer interface {
	Destroy()
}

// Wirer is implemented by components that want the shared scope before
// Init.
type Wirer interface {
	Wire(shared Shared)
}

// RendererKind discriminates renderer implementations.
type RendererKind uint8

// Renderer kinds.
const (
	RendererKindFunction RendererKind = iota + 1
	RendererKindComponent
)

// Renderer is a registered renderer. Whether it is a component or a plain
// function is decided when it is created, never by inspecting it later.
type Renderer struct {
	Kind RendererKind
	Func RenderFunc
	New  func() CellRenderer
}

// FunctionRenderer wraps fn.
func FunctionRenderer(fn RenderFunc) Renderer {
	return Renderer{Kind: RendererKindFunction, Func: fn}
}

// ComponentRenderer wraps a component factory.
func ComponentRenderer(factory func() CellRenderer) Renderer {
	return Renderer{Kind: RendererKindComponent, New: factory}
}

// Valid reports whether r can be mounted.
func (r Renderer) Valid() bool {
	switch r.Kind {
	case RendererKindFunction:
		return r.Func != nil
	case RendererKindComponent:
		return r.New != nil
	default:
		return false
	}
}

type refKind uint8

const (
	refNone refKind = iota
	refNamed
	refDirect
)

// RendererRef is a column's reference to a renderer: a registered name, a
// component factory or a function.
type RendererRef struct {
	kind     refKind
	name     string
	renderer Renderer
}

// RendererNamed refers to a renderer registered under name.
func RendererNamed(name string) RendererRef {
	if name == "" {
		return RendererRef{}
	}
	return RendererRef{kind: refNamed, name: name}
}

// RendererComponent refers directly to a component factory.
func RendererComponent(factory func() CellRenderer) RendererRef {
	return RendererRef{kind: refDirect, renderer: ComponentRenderer(factory)}
}

// RendererFunc refers directly to a renderer function.
func RendererFunc(fn RenderFunc) RendererRef {
	return RendererRef{kind: refDirect, renderer: FunctionRenderer(fn)}
}

// IsZero reports whether no renderer is configured.
func (r RendererRef) IsZero() bool { return r.kind == refNone }

// Name returns the registered name for a named reference.
func (r RendererRef) Name() (string, bool) { return r.name, r.kind == refNamed }

// Direct returns the renderer for a direct reference.
func (r RendererRef) Direct() (Renderer, bool) { return r.renderer, r.kind == refDirect }

func (r RendererRef) String() string {
	switch r.kind {
	case refNamed:
		return r.name
	case refDirect:
		if r.renderer.Kind == RendererKindComponent {
			return "<component>"
		}
		return "<function>"
	default:
		return ""
	}
}

// UnmarshalYAML accepts a registered renderer name.
func (r *RendererRef) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return fmt.Errorf("cell renderer: expected a name: %w", err)
	}
	*r = RendererNamed(name)
	return nil
}
