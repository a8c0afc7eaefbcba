package render

import (
	"github.com/spf13/cast"

	"github.com/Iron-Ham/cellgrid/internal/dom"
	"github.com/Iron-Ham/cellgrid/internal/errors"
	"github.com/Iron-Ham/cellgrid/internal/grid"
)

// Strategy is the way a cell's value element gets populated.
type Strategy uint8

// Strategies in precedence order.
const (
	StrategyTemplate Strategy = iota + 1
	StrategyTemplateURL
	StrategyFloatingRenderer
	StrategyRenderer
	StrategyFallback
)

func (s Strategy) String() string {
	switch s {
	case StrategyTemplate:
		return "template"
	case StrategyTemplateURL:
		return "template_url"
	case StrategyFloatingRenderer:
		return "floating_renderer"
	case StrategyRenderer:
		return "renderer"
	case StrategyFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Selection is the chosen strategy with what it needs.
type Selection struct {
	Strategy Strategy
	// Template is the inline template or the template URL.
	Template string
	Renderer grid.RendererRef
	// Extra is the column's params for the chosen renderer.
	Extra map[string]any
}

// Select picks the first applicable strategy: inline template, template URL,
// floating renderer (floating rows only), renderer, then plain text.
func Select(def *grid.ColDef, floating bool) Selection {
	switch {
	case def.Template != "":
		return Selection{Strategy: StrategyTemplate, Template: def.Template}
	case def.TemplateURL != "":
		return Selection{Strategy: StrategyTemplateURL, Template: def.TemplateURL}
	case floating && !def.FloatingCellRenderer.IsZero():
		return Selection{Strategy: StrategyFloatingRenderer, Renderer: def.FloatingCellRenderer, Extra: def.FloatingCellRendererParams}
	case !def.CellRenderer.IsZero():
		return Selection{Strategy: StrategyRenderer, Renderer: def.CellRenderer, Extra: def.CellRendererParams}
	default:
		return Selection{Strategy: StrategyFallback}
	}
}

// TemplateSource loads templates by URL. When a template is not available
// yet, onReady is called once it is.
type TemplateSource interface {
	Template(url string, onReady func()) (string, bool)
}

// Resolver looks up renderers.
type Resolver interface {
	Resolve(ref grid.RendererRef) (grid.Renderer, error)
}

// Selector populates value elements.
type Selector struct {
	renderers Resolver
	templates TemplateSource
}

// NewSelector creates a selector. templates may be nil, in which case
// template URLs are a configuration error.
func NewSelector(renderers Resolver, templates TemplateSource) *Selector {
	return &Selector{renderers: renderers, templates: templates}
}

// Populate fills params.ParentOfValue for def and returns the mounted
// component renderer, if one was created. The parent is expected to be
// empty. Template URLs that are still loading leave the parent empty and
// call onTemplateReady later.
//
// A renderer that cannot be resolved returns a configuration error and
// leaves the parent empty.
func (s *Selector) Populate(def *grid.ColDef, floating bool, params grid.CellRendererParams, onTemplateReady func()) (grid.CellRenderer, error) {
	parent := params.ParentOfValue
	sel := Select(def, floating)

	switch sel.Strategy {
	case StrategyTemplate:
		parent.SetInnerHTML(sel.Template)
		return nil, nil

	case StrategyTemplateURL:
		if s.templates == nil {
			return nil, errors.NewConfigurationError("no template source", errors.ErrTemplateUnavailable).WithName(sel.Template)
		}
		if tmpl, ok := s.templates.Template(sel.Template, onTemplateReady); ok {
			parent.SetInnerHTML(tmpl)
		}
		return nil, nil

	case StrategyFloatingRenderer, StrategyRenderer:
		renderer, err := s.renderers.Resolve(sel.Renderer)
		if err != nil {
			return nil, err
		}
		params.Extra = sel.Extra
		component, out := Mount(renderer, params)
		Apply(parent, out)
		return component, nil

	default:
		if text := FallbackText(params.Value, params.ValueFormatted); text != "" {
			parent.SetInnerHTML(text)
		}
		return nil, nil
	}
}

// Mount runs renderer against params. Components are constructed, wired,
// initialised and asked for their GUI; functions are called once.
func Mount(renderer grid.Renderer, params grid.CellRendererParams) (grid.CellRenderer, grid.RenderOutput) {
	switch renderer.Kind {
	case grid.RendererKindComponent:
		component := renderer.New()
		if w, ok := component.(grid.Wirer); ok {
			w.Wire(params.Shared)
		}
		component.Init(params)
		return component, grid.RenderElement(component.GUI())
	case grid.RendererKindFunction:
		return nil, renderer.Func(params)
	default:
		return nil, grid.RenderNothing()
	}
}

// Apply inserts out into parent: elements are appended, markup replaces the
// content.
func Apply(parent *dom.Element, out grid.RenderOutput) {
	switch {
	case out.IsEmpty():
	case out.Element() != nil:
		parent.AppendChild(out.Element())
	default:
		parent.SetInnerHTML(out.Markup())
	}
}

// FallbackText is the plain text shown without a renderer: the formatted
// value when there is one, otherwise the value. Absent and empty values
// produce "".
func FallbackText(value any, formatted string) string {
	if formatted != "" {
		return formatted
	}
	if value == nil {
		return ""
	}
	return cast.ToString(value)
}
