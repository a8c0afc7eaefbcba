package render

import (
	"testing"

	"github.com/Iron-Ham/cellgrid/internal/dom"
	"github.com/Iron-Ham/cellgrid/internal/errors"
	"github.com/Iron-Ham/cellgrid/internal/grid"
)

// recordingRenderer records its lifecycle calls.
type recordingRenderer struct {
	calls  []string
	params grid.CellRendererParams
	gui    *dom.Element
}

func (r *recordingRenderer) Wire(grid.Shared) { r.calls = append(r.calls, "wire") }

func (r *recordingRenderer) Init(params grid.CellRendererParams) {
	r.calls = append(r.calls, "init")
	r.params = params
	r.gui = dom.NewText("component")
}

func (r *recordingRenderer) GUI() *dom.Element {
	r.calls = append(r.calls, "gui")
	return r.gui
}

type fakeTemplates struct {
	content map[string]string
	waiting []func()
}

func (f *fakeTemplates) Template(url string, onReady func()) (string, bool) {
	if c, ok := f.content[url]; ok {
		return c, true
	}
	f.waiting = append(f.waiting, onReady)
	return "", false
}

func newParams(value any, formatted string) grid.CellRendererParams {
	return grid.CellRendererParams{
		CellParams:     grid.CellParams{Value: value},
		ValueFormatted: formatted,
		ParentOfValue:  dom.NewElement("div"),
	}
}

func TestSelect_Precedence(t *testing.T) {
	fn := grid.RendererFunc(func(grid.CellRendererParams) grid.RenderOutput { return grid.RenderNothing() })

	tests := []struct {
		name     string
		def      grid.ColDef
		floating bool
		want     Strategy
	}{
		{"template beats everything", grid.ColDef{Template: "<b>", TemplateURL: "x", CellRenderer: fn}, false, StrategyTemplate},
		{"template url", grid.ColDef{TemplateURL: "x", CellRenderer: fn}, false, StrategyTemplateURL},
		{"floating renderer on floating row", grid.ColDef{FloatingCellRenderer: fn, CellRenderer: fn}, true, StrategyFloatingRenderer},
		{"floating renderer ignored on normal row", grid.ColDef{FloatingCellRenderer: fn, CellRenderer: fn}, false, StrategyRenderer},
		{"floating renderer alone on normal row", grid.ColDef{FloatingCellRenderer: fn}, false, StrategyFallback},
		{"renderer", grid.ColDef{CellRenderer: grid.RendererNamed("group")}, false, StrategyRenderer},
		{"fallback", grid.ColDef{}, true, StrategyFallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Select(&tt.def, tt.floating).Strategy; got != tt.want {
				t.Errorf("Select() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFallbackText(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		formatted string
		want      string
	}{
		{"string", "Widget", "", "Widget"},
		{"formatted wins", 4.5, "$4.50", "$4.50"},
		{"number", 42, "", "42"},
		{"nil", nil, "", ""},
		{"empty", "", "", ""},
		{"zero is shown", 0, "", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FallbackText(tt.value, tt.formatted); got != tt.want {
				t.Errorf("FallbackText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPopulate_Fallback(t *testing.T) {
	sel := NewSelector(NewRegistry(), nil)

	params := newParams("Widget", "")
	if _, err := sel.Populate(&grid.ColDef{}, false, params, nil); err != nil {
		t.Fatal(err)
	}
	if got := params.ParentOfValue.InnerText(); got != "Widget" {
		t.Errorf("InnerText() = %q, want Widget", got)
	}

	params = newParams(nil, "")
	if _, err := sel.Populate(&grid.ColDef{}, false, params, nil); err != nil {
		t.Fatal(err)
	}
	if params.ParentOfValue.ChildCount() != 0 {
		t.Errorf("absent value should insert nothing, got %q", params.ParentOfValue.InnerText())
	}
}

func TestPopulate_Component(t *testing.T) {
	rec := &recordingRenderer{}
	reg := NewRegistry()
	if err := reg.Register("rec", grid.ComponentRenderer(func() grid.CellRenderer { return rec })); err != nil {
		t.Fatal(err)
	}

	def := &grid.ColDef{
		CellRenderer:       grid.RendererNamed("rec"),
		CellRendererParams: map[string]any{"unit": "kg"},
	}
	params := newParams(3, "")
	component, err := NewSelector(reg, nil).Populate(def, false, params, nil)
	if err != nil {
		t.Fatal(err)
	}
	if component != rec {
		t.Error("Populate should return the mounted component")
	}

	want := []string{"wire", "init", "gui"}
	if len(rec.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Errorf("calls = %v, want %v", rec.calls, want)
		}
	}
	if rec.params.Extra["unit"] != "kg" {
		t.Errorf("Extra = %v, want renderer params", rec.params.Extra)
	}
	if params.ParentOfValue.InnerText() != "component" {
		t.Errorf("GUI not appended: %q", params.ParentOfValue.InnerText())
	}
}

func TestPopulate_FunctionOutputs(t *testing.T) {
	tests := []struct {
		name     string
		out      grid.RenderOutput
		want     string
		children int
	}{
		{"nothing", grid.RenderNothing(), "", 0},
		{"element", grid.RenderElement(dom.NewText("el")), "el", 1},
		{"markup", grid.RenderMarkup("<i>m</i>"), "<i>m</i>", 1},
		{"empty markup", grid.RenderMarkup(""), "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			def := &grid.ColDef{CellRenderer: grid.RendererFunc(func(grid.CellRendererParams) grid.RenderOutput {
				calls++
				return tt.out
			})}
			params := newParams("v", "")
			component, err := NewSelector(NewRegistry(), nil).Populate(def, false, params, nil)
			if err != nil {
				t.Fatal(err)
			}
			if component != nil {
				t.Error("function renderers have no component")
			}
			if calls != 1 {
				t.Errorf("function called %d times, want 1", calls)
			}
			if params.ParentOfValue.InnerText() != tt.want || params.ParentOfValue.ChildCount() != tt.children {
				t.Errorf("content = %q (%d children)", params.ParentOfValue.InnerText(), params.ParentOfValue.ChildCount())
			}
		})
	}
}

func TestPopulate_UnknownRendererSkips(t *testing.T) {
	params := newParams("Widget", "")
	def := &grid.ColDef{CellRenderer: grid.RendererNamed("missing")}

	_, err := NewSelector(NewRegistry(), nil).Populate(def, false, params, nil)
	if !errors.Is(err, errors.ErrRendererNotFound) {
		t.Fatalf("err = %v, want ErrRendererNotFound", err)
	}
	if !errors.IsConfiguration(err) {
		t.Error("an unknown renderer is a configuration error")
	}
	if params.ParentOfValue.ChildCount() != 0 {
		t.Error("population should be skipped")
	}
}

func TestPopulate_TemplateURL(t *testing.T) {
	templates := &fakeTemplates{content: map[string]string{}}
	sel := NewSelector(NewRegistry(), templates)
	def := &grid.ColDef{TemplateURL: "cell.tmpl"}

	ready := 0
	params := newParams("v", "")
	if _, err := sel.Populate(def, false, params, func() { ready++ }); err != nil {
		t.Fatal(err)
	}
	if params.ParentOfValue.ChildCount() != 0 || len(templates.waiting) != 1 {
		t.Fatal("population should be deferred until the template loads")
	}

	templates.content["cell.tmpl"] = "<b>loaded</b>"
	templates.waiting[0]()
	if ready != 1 {
		t.Error("onTemplateReady should be forwarded")
	}

	params = newParams("v", "")
	if _, err := sel.Populate(def, false, params, nil); err != nil {
		t.Fatal(err)
	}
	if params.ParentOfValue.InnerText() != "<b>loaded</b>" {
		t.Errorf("InnerText() = %q", params.ParentOfValue.InnerText())
	}
}

func TestPopulate_TemplateURLWithoutSource(t *testing.T) {
	_, err := NewSelector(NewRegistry(), nil).Populate(&grid.ColDef{TemplateURL: "x"}, false, newParams("v", ""), nil)
	if !errors.Is(err, errors.ErrTemplateUnavailable) {
		t.Errorf("err = %v, want ErrTemplateUnavailable", err)
	}
}

func TestRegistry(t *testing.T) {
	reg := NewDefaultRegistry()

	names := reg.Names()
	if len(names) != 2 || names[0] != AnimateShowChangeRenderer || names[1] != GroupRenderer {
		t.Errorf("Names() = %v", names)
	}

	group, err := reg.Resolve(grid.RendererNamed(GroupRenderer))
	if err != nil || group.Kind != grid.RendererKindFunction {
		t.Errorf("group = %+v, %v", group, err)
	}
	delta, err := reg.Resolve(grid.RendererNamed(AnimateShowChangeRenderer))
	if err != nil || delta.Kind != grid.RendererKindComponent {
		t.Errorf("animateShowChange = %+v, %v", delta, err)
	}

	if _, err := reg.Resolve(grid.RendererRef{}); !errors.Is(err, errors.ErrRendererNotFound) {
		t.Errorf("zero ref err = %v", err)
	}
	if err := reg.Register("", grid.FunctionRenderer(Group)); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("empty name err = %v", err)
	}
	if err := reg.Register("bad", grid.Renderer{}); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("invalid renderer err = %v", err)
	}
}

func TestGroupRenderer(t *testing.T) {
	tests := []struct {
		name  string
		node  *grid.RowNode
		extra map[string]any
		want  string
	}{
		{"data row", &grid.RowNode{}, nil, "Tools"},
		{"collapsed group", &grid.RowNode{Group: true}, nil, "▸ Tools"},
		{"expanded group", &grid.RowNode{Group: true, Expanded: true}, nil, "▾ Tools"},
		{"footer", &grid.RowNode{Group: true, Footer: true}, nil, "Total Tools"},
		{"count", &grid.RowNode{Group: true}, map[string]any{"count": 3}, "▸ Tools (3)"},
		{"suppressed count", &grid.RowNode{Group: true}, map[string]any{"count": 3, "suppressCount": true}, "▸ Tools"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := newParams("Tools", "")
			params.Node = tt.node
			params.Extra = tt.extra
			out := Group(params)
			if got := out.Element().InnerText(); got != tt.want {
				t.Errorf("Group() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnimateShowChange(t *testing.T) {
	r := NewAnimateShowChange()
	r.Init(newParams(10, ""))
	a := r.(*AnimateShowChange)

	if a.value.InnerText() != "10" || a.delta.InnerText() != "" {
		t.Fatalf("initial = %q / %q", a.value.InnerText(), a.delta.InnerText())
	}

	a.Refresh(newParams(12.5, ""))
	if a.delta.InnerText() != "↑2.5" || !a.delta.HasClass(ChangeDeltaUpClass) {
		t.Errorf("delta = %q classes %v", a.delta.InnerText(), a.delta.Classes())
	}
	if !a.value.HasClass(ChangeHighlightClass) {
		t.Error("a changed value should be highlighted")
	}

	a.Refresh(newParams(7.5, ""))
	if a.delta.InnerText() != "↓5" || !a.delta.HasClass(ChangeDeltaDownClass) || a.delta.HasClass(ChangeDeltaUpClass) {
		t.Errorf("delta = %q classes %v", a.delta.InnerText(), a.delta.Classes())
	}

	a.Refresh(newParams(7.5, ""))
	if a.value.HasClass(ChangeHighlightClass) {
		t.Error("an unchanged value should not be highlighted")
	}

	a.Refresh(newParams("n/a", ""))
	if a.delta.InnerText() != "" || a.value.InnerText() != "n/a" {
		t.Errorf("non-numeric = %q / %q", a.delta.InnerText(), a.value.InnerText())
	}

	a.Destroy()
	if a.GUI().ChildCount() != 0 {
		t.Error("Destroy should clear the GUI")
	}
}
