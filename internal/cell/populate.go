package cell

import (
	"github.com/Iron-Ham/cellgrid/internal/grid"
)

// RefreshCell recomputes the value and updates the cell. A mounted renderer
// that can refresh in place is handed the new value and only class rules
// are re-evaluated; otherwise the content is rebuilt. With animate the
// data-changed flash runs.
//
// While an inline editor is mounted the value is recomputed but the content
// is left to the editor; stopping the edit refreshes again.
func (c *Controller) RefreshCell(animate bool) {
	if c.destroyed {
		return
	}
	c.value = c.getValue()

	switch {
	case c.state == StateEditingInline:
	case c.renderer != nil && isRefresher(c.renderer):
		c.renderer.(grid.Refresher).Refresh(c.rendererParams(c.formatValue(c.value)))
		c.addClassesFromRules()
	default:
		c.parentOfValue.RemoveAllChildren()
		c.destroyRenderer()
		c.populate()
	}

	if animate {
		c.animateDataChanged()
	}
}

func isRefresher(r grid.CellRenderer) bool {
	_, ok := r.(grid.Refresher)
	return ok
}

func (c *Controller) destroyRenderer() {
	if d, ok := c.renderer.(grid.Destroyer); ok {
		d.Destroy()
	}
	c.renderer = nil
}

func (c *Controller) animateDataChanged() {
	if c.deps.Options.EnableCellChangeFlash || c.column.ColDef().EnableCellChangeFlash {
		c.anim.start(animationDataChanged)
	}
}

// populate renders the value, then applies column styles, column classes
// and class rules, in that order.
func (c *Controller) populate() {
	c.putDataIntoCell()
	c.addStylesFromColDef()
	c.addClassesFromColDef()
	c.addClassesFromRules()
}

func (c *Controller) putDataIntoCell() {
	params := c.rendererParams(c.formatValue(c.value))
	renderer, err := c.selector.Populate(c.column.ColDef(), c.row.IsFloating(), params, c.onTemplateReady)
	if err != nil {
		c.logger.LogError("cell population skipped", err)
		return
	}
	c.renderer = renderer
}

func (c *Controller) onTemplateReady() {
	if !c.destroyed {
		c.RefreshCell(true)
	}
}

// formatValue applies the column formatter. Floating rows prefer the
// floating formatter.
func (c *Controller) formatValue(v any) string {
	def := c.column.ColDef()
	formatter := def.CellFormatter
	if c.row.IsFloating() && def.FloatingCellFormatter != nil {
		formatter = def.FloatingCellFormatter
	}
	if formatter == nil {
		return ""
	}
	return formatter(grid.FormatterParams{
		Value:    v,
		Node:     c.row,
		Column:   c.column,
		RowIndex: c.rowIndex,
		Shared:   c.deps.Shared,
	})
}

func (c *Controller) rendererParams(formatted string) grid.CellRendererParams {
	return grid.CellRendererParams{
		CellParams:     c.cellParams(),
		ValueFormatted: formatted,
		GetValue:       c.getValue,
		FormatValue:    c.formatValue,
		RefreshCell:    c.RefreshCell,
		GridCell:       c.gui,
		ParentOfValue:  c.parentOfValue,
	}
}

func (c *Controller) addStylesFromColDef() {
	style := c.column.ColDef().CellStyle
	if style.IsZero() {
		return
	}
	c.gui.SetStyles(style.Resolve(grid.CellStyleParams{CellParams: c.cellParams()}))
}

func (c *Controller) addClassesFromColDef() {
	class := c.column.ColDef().CellClass
	if class.IsZero() {
		return
	}
	for _, name := range class.Resolve(grid.CellClassParams{CellParams: c.cellParams()}) {
		if name != "" {
			c.gui.AddClass(name)
		}
	}
}

// addClassesFromRules toggles each rule's class on its result. A string
// rule that cannot be evaluated counts as false.
func (c *Controller) addClassesFromRules() {
	rules := c.column.ColDef().CellClassRules
	if len(rules) == 0 {
		return
	}
	params := grid.ClassRuleParams{CellParams: c.cellParams()}
	for _, rule := range rules {
		c.gui.SetClass(rule.Class, c.evaluateRule(rule, params))
	}
}

func (c *Controller) evaluateRule(rule grid.ClassRule, params grid.ClassRuleParams) bool {
	if rule.Predicate != nil {
		return rule.Predicate(params)
	}
	if rule.Expression == "" {
		return false
	}
	if c.deps.Expressions == nil {
		c.logger.Warn("class rule skipped, no expression evaluator", "class", rule.Class)
		return false
	}
	ok, err := c.deps.Expressions.Evaluate(rule.Expression, params)
	if err != nil {
		c.logger.Warn("class rule failed", "class", rule.Class, "error", err)
		return false
	}
	return ok
}
