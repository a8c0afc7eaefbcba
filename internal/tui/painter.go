package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cast"

	"github.com/Iron-Ham/cellgrid/internal/cell"
	"github.com/Iron-Ham/cellgrid/internal/cell/editor"
	"github.com/Iron-Ham/cellgrid/internal/contextmenu"
	"github.com/Iron-Ham/cellgrid/internal/dom"
	"github.com/Iron-Ham/cellgrid/internal/grid"
	"github.com/Iron-Ham/cellgrid/internal/popup"
	"github.com/Iron-Ham/cellgrid/internal/tui/styles"
)

// Popups are never narrower than this, border excluded.
const minPopupWidth = 10

// edge is drawn on the inner side of pinned sections.
const edge = "│"

type hitArea struct {
	el   *dom.Element
	rect popup.Rect
}

// Painter draws a GridView as terminal text and remembers where each
// element ended up, for popup positioning and mouse hit-testing.
type Painter struct {
	rects map[*dom.Element]popup.Rect
	// in paint order, so later entries are on top
	hits []hitArea

	classStyles map[string]map[string]string
}

// NewPainter creates a painter.
func NewPainter() *Painter {
	return &Painter{rects: make(map[*dom.Element]popup.Rect)}
}

// SetClassStyles maps cell classes to inline-style properties layered on
// cells carrying them, such as {"negative": {"color": "red"}}. Class names
// match case-insensitively.
func (p *Painter) SetClassStyles(classStyles map[string]map[string]string) {
	p.classStyles = make(map[string]map[string]string, len(classStyles))
	for class, props := range classStyles {
		p.classStyles[strings.ToLower(class)] = props
	}
}

// Bounds reports where el was last painted. Popup content that has not been
// painted yet reports its size at the origin, so it can be positioned
// before its first paint.
func (p *Painter) Bounds(el *dom.Element) (popup.Rect, bool) {
	if r, ok := p.rects[el]; ok {
		return r, true
	}
	if parent := el.Parent(); parent != nil && parent.HasClass(popup.LayerClass) {
		w, h := popupSize(blockLines(el))
		return popup.Rect{Width: w, Height: h}, true
	}
	return popup.Rect{}, false
}

// HitTest returns the topmost painted element at (x, y), or nil.
func (p *Painter) HitTest(x, y int) *dom.Element {
	for i := len(p.hits) - 1; i >= 0; i-- {
		r := p.hits[i].rect
		if x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height {
			return p.hits[i].el
		}
	}
	return nil
}

func (p *Painter) record(el *dom.Element, r popup.Rect) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	p.rects[el] = r
	p.hits = append(p.hits, hitArea{el: el, rect: r})
}

// Paint draws the header, the visible rows, the status line and any open
// popups, filling the view's viewport.
func (p *Painter) Paint(v *GridView, st *styles.ThemedStyles, status string) string {
	clear(p.rects)
	p.hits = p.hits[:0]

	w, h := v.Viewport()
	if w <= 0 || h <= 0 {
		return ""
	}
	blank := strings.Repeat(" ", w)
	lines := make([]string, 0, h)

	lines = append(lines, p.paintHeader(v, st))
	y := 1
	for i := range v.topCount {
		lines = append(lines, p.paintRow(v, v.rows[i], y, st))
		y++
	}

	capacity := v.bodyCapacity()
	for i := range capacity {
		row := v.scrollRow + i
		if row < v.bodyCount {
			lines = append(lines, p.paintRow(v, v.rows[v.topCount+row], y, st))
		} else {
			lines = append(lines, blank)
		}
		y++
	}

	for _, r := range v.rows[v.topCount+v.bodyCount:] {
		lines = append(lines, p.paintRow(v, r, y, st))
		y++
	}

	for len(lines) < h-1 {
		lines = append(lines, blank)
	}
	lines = lines[:h-1]
	lines = append(lines, fitLine(st.StatusBar.Render(status), w))

	for _, content := range v.popups.Popups() {
		p.paintPopup(lines, content, w, st)
	}
	return strings.Join(lines, "\n")
}

// -----------------------------------------------------------------------------
// Rows
// -----------------------------------------------------------------------------

// sectionX returns the screen column where a section starts.
func sectionX(v *GridView, section int) int {
	switch section {
	case 0:
		return 0
	case 1:
		return v.sectionWidth[0] - v.scrollX
	default:
		return v.sectionWidth[0] + v.centerWidth()
	}
}

// compose joins the three section strings, cutting the unpinned one to its
// scrolled window.
func compose(v *GridView, parts [3]string) string {
	cw := v.centerWidth()
	center := ansi.Cut(parts[1], v.scrollX, v.scrollX+cw)
	if n := ansi.StringWidth(center); n < cw {
		center += strings.Repeat(" ", cw-n)
	}
	return fitLine(parts[0]+center+parts[2], v.width)
}

func (p *Painter) paintHeader(v *GridView, st *styles.ThemedStyles) string {
	var parts [3]strings.Builder
	for _, col := range v.columns {
		s := sectionIndex(col.Pinned())
		width := col.ActualWidth()
		name := col.ColDef().HeaderName
		if name == "" {
			name = col.ID()
		}
		text := runewidth.FillRight(runewidth.Truncate(name, max(0, width-1), "…"), width)
		style := st.Header
		if col.Pinned() != grid.PinnedNone {
			style = st.HeaderPinned
		}
		parts[s].WriteString(style.Render(text))
	}
	return compose(v, [3]string{parts[0].String(), parts[1].String(), parts[2].String()})
}

func (p *Painter) paintRow(v *GridView, r *viewRow, y int, st *styles.ThemedStyles) string {
	var parts [3]strings.Builder
	for i, c := range r.cells {
		col := v.columns[i]
		s := sectionIndex(col.Pinned())
		left, _ := col.Left()
		width := col.ActualWidth()
		parts[s].WriteString(p.paintCell(c, r.node, width, st))

		x := sectionX(v, s) + left
		rect := popup.Rect{X: x, Y: y, Width: width, Height: 1}
		if s == 1 {
			rect = clipX(rect, v.sectionWidth[0], v.sectionWidth[0]+v.centerWidth())
		}
		p.record(c.GUI(), rect)
		p.recordInline(c.GUI(), x+edgeOffset(c.GUI()), y, rect)
	}
	return compose(v, [3]string{parts[0].String(), parts[1].String(), parts[2].String()})
}

func edgeOffset(el *dom.Element) int {
	if el.HasClass(cell.ClassFirstRightPinned) {
		return 1
	}
	return 0
}

// paintCell renders the cell's text padded or truncated to width, styled
// from its classes and inline style.
func (p *Painter) paintCell(c *cell.Controller, row *grid.RowNode, width int, st *styles.ThemedStyles) string {
	el := c.GUI()
	text := strings.ReplaceAll(el.InnerText(), "\n", " ")

	inner := width
	lastLeft, firstRight := el.HasClass(cell.ClassLastLeftPinned), el.HasClass(cell.ClassFirstRightPinned)
	if lastLeft {
		inner--
	}
	if firstRight {
		inner--
	}
	if inner <= 0 {
		return strings.Repeat(" ", max(0, width))
	}

	text = ansi.Truncate(text, inner, "…")
	out := p.cellStyle(el, row, st).Width(inner).MaxWidth(inner).Render(text)
	if firstRight {
		out = st.PinnedEdge.Render(edge) + out
	}
	if lastLeft {
		out += st.PinnedEdge.Render(edge)
	}
	return out
}

// cellStyle layers the state styles in order over the base cell style.
// Inline styles go last, as they would override class rules.
func (p *Painter) cellStyle(el *dom.Element, row *grid.RowNode, st *styles.ThemedStyles) lipgloss.Style {
	s := st.Cell
	layer := func(on bool, top lipgloss.Style) {
		if on {
			s = top.Inherit(s)
		}
	}

	layer(el.HasClass(cell.ClassGroup), st.Group)
	layer(el.HasClass(cell.ClassFooter), st.Footer)
	layer(row != nil && row.IsSelected(), st.Selected)
	layer(el.HasClass(cell.ClassRangeSelected+"-1"), st.Range)
	layer(el.HasClass(cell.ClassRangeSelected) && !el.HasClass(cell.ClassRangeSelected+"-1"), st.RangeDeep)
	layer(el.HasClass(cell.ClassFocus), st.Focus)
	layer(el.HasClass(cell.ClassInlineEditing), st.Editing)

	for _, class := range el.Classes() {
		if props, ok := p.classStyles[strings.ToLower(class)]; ok {
			s = styles.FromCSS(s, props)
		}
	}

	layer(el.HasClass(cell.ClassDataChanged), st.Flash)
	layer(el.HasClass(cell.ClassHighlight), st.Highlight)
	layer(el.HasClass(cell.ClassDataChangedAnimation) || el.HasClass(cell.ClassHighlightAnimation), st.Fade)

	return styles.FromCSS(s, inlineStyle(el))
}

// inlineStyle returns the text styling part of el's inline style, leaving
// out the layout properties.
func inlineStyle(el *dom.Element) map[string]string {
	props := map[string]string{}
	for _, prop := range []string{"color", "background-color", "background", "font-weight", "font-style", "text-decoration", "text-align"} {
		if v := el.Style(prop); v != "" {
			props[prop] = v
		}
	}
	return props
}

// recordInline records the spans of the cell's descendants in text order,
// so clicks land on the element whose text is under the pointer.
func (p *Painter) recordInline(el *dom.Element, x, y int, clip popup.Rect) {
	for _, child := range el.Children() {
		w := ansi.StringWidth(child.InnerText())
		if !child.IsText() {
			r := clipX(popup.Rect{X: x, Y: y, Width: w, Height: 1}, clip.X, clip.X+clip.Width)
			p.record(child, r)
			p.recordInline(child, x, y, clip)
		}
		x += w
	}
}

func clipX(r popup.Rect, lo, hi int) popup.Rect {
	x0, x1 := max(r.X, lo), min(r.X+r.Width, hi)
	if x1 <= x0 {
		return popup.Rect{X: x0, Y: r.Y}
	}
	r.X, r.Width = x0, x1-x0
	return r
}

// fitLine pads or cuts s to exactly w columns.
func fitLine(s string, w int) string {
	n := ansi.StringWidth(s)
	switch {
	case n < w:
		return s + strings.Repeat(" ", w-n)
	case n > w:
		return ansi.Truncate(s, w, "")
	default:
		return s
	}
}

// -----------------------------------------------------------------------------
// Popups
// -----------------------------------------------------------------------------

type blockLine struct {
	el   *dom.Element
	text string
}

// blockLines lays out popup content: elements whose children are all divs
// stack them one per line, anything else is one line of text.
func blockLines(el *dom.Element) []blockLine {
	children := el.Children()
	stacked := len(children) > 0
	for _, c := range children {
		if c.IsText() || c.Tag() != "div" {
			stacked = false
			break
		}
	}
	if !stacked {
		return []blockLine{{el: el, text: strings.ReplaceAll(el.InnerText(), "\n", " ")}}
	}
	var lines []blockLine
	for _, c := range children {
		lines = append(lines, blockLines(c)...)
	}
	return lines
}

// popupSize returns the bordered size of lines.
func popupSize(lines []blockLine) (int, int) {
	inner := minPopupWidth
	for _, l := range lines {
		inner = max(inner, ansi.StringWidth(l.text))
	}
	return inner + 2, len(lines) + 2
}

func isActiveOption(el *dom.Element) bool {
	return el.HasClass(contextmenu.ActiveItemClass) || el.HasClass(editor.SelectedOptionClass)
}

func (p *Painter) paintPopup(lines []string, content *dom.Element, w int, st *styles.ThemedStyles) {
	block := blockLines(content)
	width, height := popupSize(block)
	inner := width - 2

	rendered := make([]string, len(block))
	for i, l := range block {
		style := st.MenuItem
		if isActiveOption(l.el) {
			style = st.MenuItemActive
		}
		rendered[i] = style.Render(fitLine(l.text, inner))
	}
	box := strings.Split(st.Popup.Width(inner).Render(strings.Join(rendered, "\n")), "\n")

	x := max(0, cast.ToInt(content.Style("left")))
	y := max(0, cast.ToInt(content.Style("top")))
	overlayAt(lines, box, w, x, y, width)

	p.record(content, popup.Rect{X: x, Y: y, Width: width, Height: height})
	for i, l := range block {
		if l.el != content {
			p.record(l.el, popup.Rect{X: x + 1, Y: y + 1 + i, Width: inner, Height: 1})
		}
	}
}

// overlayAt draws fg over bg starting at (x, y), keeping what lies either
// side of it.
func overlayAt(bg, fg []string, w, x, y, fgW int) {
	if fgW <= 0 {
		return
	}
	for i := 0; i < len(fg) && y+i < len(bg); i++ {
		line := bg[y+i]
		left := ansi.Cut(line, 0, x)
		if n := ansi.StringWidth(left); n < x {
			left += strings.Repeat(" ", x-n)
		}
		right := ansi.Cut(line, x+fgW, w)

		fgLine := fg[i]
		if n := ansi.StringWidth(fgLine); n < fgW {
			fgLine += strings.Repeat(" ", fgW-n)
		} else if n > fgW {
			fgLine = ansi.Cut(fgLine, 0, fgW)
		}
		bg[y+i] = fitLine(left+fgLine+right, w)
	}
}
