package grid

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ColDef is the user-facing definition of a column. Serializable settings
// carry yaml tags so that column files can be loaded directly; callbacks
// can only be set from code.
type ColDef struct {
	ColID      string `yaml:"col_id"`
	Field      string `yaml:"field"`
	HeaderName string `yaml:"header"`
	Width      int    `yaml:"width"`
	Pinned     string `yaml:"pinned"`

	Editable     bool                      `yaml:"editable"`
	EditableFunc func(EditableParams) bool `yaml:"-"`

	CheckboxSelection CheckboxSelection `yaml:"checkbox_selection"`

	Template    string `yaml:"template"`
	TemplateURL string `yaml:"template_url"`

	CellRenderer               RendererRef    `yaml:"cell_renderer"`
	CellRendererParams         map[string]any `yaml:"cell_renderer_params"`
	FloatingCellRenderer       RendererRef    `yaml:"floating_cell_renderer"`
	FloatingCellRendererParams map[string]any `yaml:"floating_cell_renderer_params"`

	CellEditor       EditorRef      `yaml:"cell_editor"`
	CellEditorParams map[string]any `yaml:"cell_editor_params"`

	CellFormatter         func(FormatterParams) string `yaml:"-"`
	FloatingCellFormatter func(FormatterParams) string `yaml:"-"`

	CellStyle      CellStyle  `yaml:"cell_style"`
	CellClass      CellClass  `yaml:"cell_class"`
	CellClassRules ClassRules `yaml:"cell_class_rules"`

	ValueGetter     func(ValueGetterParams) any `yaml:"-"`
	NewValueHandler func(NewValueParams) bool   `yaml:"-"`

	EnableCellChangeFlash bool `yaml:"enable_cell_change_flash"`
	Volatile              bool `yaml:"volatile"`

	OnCellClicked       func(CellEventParams)        `yaml:"-"`
	OnCellDoubleClicked func(CellEventParams)        `yaml:"-"`
	OnCellContextMenu   func(CellEventParams)        `yaml:"-"`
	OnCellValueChanged  func(CellValueChangedParams) `yaml:"-"`
}

// ID returns the column id, falling back to the field.
func (d *ColDef) ID() string {
	if d.ColID != "" {
		return d.ColID
	}
	return d.Field
}

// -----------------------------------------------------------------------------
// Checkbox selection
// -----------------------------------------------------------------------------

type settingKind uint8

const (
	settingUnset settingKind = iota
	settingStatic
	settingFunc
)

// CheckboxSelection is either an explicit boolean or a per-row predicate.
// The zero value is unset, which defers to the grid-level predicate.
type CheckboxSelection struct {
	kind  settingKind
	value bool
	fn    func(CheckboxSelectionParams) bool
}

// CheckboxBool returns an explicit setting.
func CheckboxBool(b bool) CheckboxSelection {
	return CheckboxSelection{kind: settingStatic, value: b}
}

// CheckboxFunc returns a predicate setting.
func CheckboxFunc(fn func(CheckboxSelectionParams) bool) CheckboxSelection {
	if fn == nil {
		return CheckboxSelection{}
	}
	return CheckboxSelection{kind: settingFunc, fn: fn}
}

// Bool returns the explicit value and whether one is set.
func (c CheckboxSelection) Bool() (value, ok bool) {
	return c.value, c.kind == settingStatic
}

// Func returns the predicate, or nil.
func (c CheckboxSelection) Func() func(CheckboxSelectionParams) bool {
	return c.fn
}

// UnmarshalYAML accepts a boolean.
func (c *CheckboxSelection) UnmarshalYAML(node *yaml.Node) error {
	var b bool
	if err := node.Decode(&b); err != nil {
		return fmt.Errorf("checkbox_selection: %w", err)
	}
	*c = CheckboxBool(b)
	return nil
}

// -----------------------------------------------------------------------------
// Cell style and class
// -----------------------------------------------------------------------------

// CellStyle is either a static style map or a function computing one.
type CellStyle struct {
	static map[string]string
	fn     func(CellStyleParams) map[string]string
}

// StaticStyle returns a fixed style map.
func StaticStyle(styles map[string]string) CellStyle {
	return CellStyle{static: styles}
}

// StyleFunc returns a computed style.
func StyleFunc(fn func(CellStyleParams) map[string]string) CellStyle {
	return CellStyle{fn: fn}
}

// IsZero reports whether no style is configured.
func (s CellStyle) IsZero() bool { return s.static == nil && s.fn == nil }

// Resolve returns the styles for params.
func (s CellStyle) Resolve(params CellStyleParams) map[string]string {
	if s.fn != nil {
		return s.fn(params)
	}
	return s.static
}

// UnmarshalYAML accepts a mapping of style properties.
func (s *CellStyle) UnmarshalYAML(node *yaml.Node) error {
	var styles map[string]string
	if err := node.Decode(&styles); err != nil {
		return fmt.Errorf("cell_style: %w", err)
	}
	*s = StaticStyle(styles)
	return nil
}

// CellClass is either a static class list or a function computing one.
type CellClass struct {
	static []string
	fn     func(CellClassParams) []string
}

// StaticClasses returns a fixed class list.
func StaticClasses(classes ...string) CellClass {
	return CellClass{static: classes}
}

// ClassFunc returns a computed class list.
func ClassFunc(fn func(CellClassParams) []string) CellClass {
	return CellClass{fn: fn}
}

// IsZero reports whether no class is configured.
func (c CellClass) IsZero() bool { return c.static == nil && c.fn == nil }

// Resolve returns the classes for params.
func (c CellClass) Resolve(params CellClassParams) []string {
	if c.fn != nil {
		return c.fn(params)
	}
	return c.static
}

// UnmarshalYAML accepts a single class name or a sequence of names.
func (c *CellClass) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*c = StaticClasses(node.Value)
		return nil
	case yaml.SequenceNode:
		var classes []string
		if err := node.Decode(&classes); err != nil {
			return fmt.Errorf("cell_class: %w", err)
		}
		*c = StaticClasses(classes...)
		return nil
	default:
		return fmt.Errorf("cell_class: expected a string or list at line %d", node.Line)
	}
}

// -----------------------------------------------------------------------------
// Class rules
// -----------------------------------------------------------------------------

// ClassRule toggles Class on a cell. The rule is either an expression string
// evaluated by the grid's expression evaluator or a predicate.
type ClassRule struct {
	Class      string
	Expression string
	Predicate  func(ClassRuleParams) bool
}

// RuleExpr returns an expression rule.
func RuleExpr(class, expr string) ClassRule {
	return ClassRule{Class: class, Expression: expr}
}

// RulePredicate returns a predicate rule.
func RulePredicate(class string, fn func(ClassRuleParams) bool) ClassRule {
	return ClassRule{Class: class, Predicate: fn}
}

// ClassRules are applied in order.
type ClassRules []ClassRule

// UnmarshalYAML accepts a mapping of class name to expression, keeping the
// document order.
func (r *ClassRules) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("cell_class_rules: expected a mapping at line %d", node.Line)
	}
	rules := make(ClassRules, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("cell_class_rules.%s: expected an expression at line %d", key.Value, value.Line)
		}
		rules = append(rules, RuleExpr(key.Value, value.Value))
	}
	*r = rules
	return nil
}
