// Package contextmenu shows the cell context menu. Its items copy the cell
// value or the whole row to the system clipboard and flash the copied cells.
package contextmenu

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cast"

	"github.com/Iron-Ham/cellgrid/internal/dom"
	"github.com/Iron-Ham/cellgrid/internal/event"
	"github.com/Iron-Ham/cellgrid/internal/grid"
	"github.com/Iron-Ham/cellgrid/internal/input"
	"github.com/Iron-Ham/cellgrid/internal/logging"
)

// Menu classes.
const (
	MenuClass       = "cg-menu"
	ItemClass       = "cg-menu-option"
	ActiveItemClass = "cg-menu-option-active"
)

// Popups is the overlay contract the menu needs.
type Popups interface {
	AddAsModalPopup(content *dom.Element, closeOnOutside bool, onClose func()) func()
	PositionOver(anchor, content *dom.Element, keepWithinBounds bool)
}

// Values reads cell values for row copies.
type Values interface {
	GetValue(col *grid.Column, data any, row *grid.RowNode) any
}

// Item is one menu entry.
type Item struct {
	Label  string
	Action func()
}

// Service builds and shows context menus.
type Service struct {
	bus     *event.Bus
	doc     *dom.Document
	popups  Popups
	columns grid.ColumnAPI
	values  Values
	anchor  func(row *grid.RowNode, col *grid.Column) *dom.Element
	write   func(string) error
	logger  *logging.Logger

	open *openMenu
}

type openMenu struct {
	el     *dom.Element
	items  []Item
	active int
	hide   func()
}

// Option configures a Service.
type Option func(*Service)

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(s *Service) { s.write = write }
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithAnchor sets the lookup used to position the menu over the clicked
// cell. Without one the menu is shown at the layer origin.
func WithAnchor(anchor func(row *grid.RowNode, col *grid.Column) *dom.Element) Option {
	return func(s *Service) { s.anchor = anchor }
}

// NewService creates a menu service.
func NewService(bus *event.Bus, doc *dom.Document, popups Popups, columns grid.ColumnAPI, values Values, opts ...Option) *Service {
	s := &Service{
		bus:     bus,
		doc:     doc,
		popups:  popups,
		columns: columns,
		values:  values,
		write:   clipboard.WriteAll,
		logger:  logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsOpen reports whether a menu is showing.
func (s *Service) IsOpen() bool { return s.open != nil }

// ShowMenu opens the menu for a cell, replacing any open menu.
func (s *Service) ShowMenu(row *grid.RowNode, col *grid.Column, value any, _ input.MouseEvent) {
	s.Close()

	items := []Item{
		{Label: "Copy", Action: func() { s.copyCell(row, col, value) }},
		{Label: "Copy Row", Action: func() { s.copyRow(row) }},
	}

	el := dom.NewElement("div")
	el.AddClass(MenuClass)
	el.SetAttribute("tabindex", "-1")
	m := &openMenu{el: el, items: items}
	for i, item := range items {
		opt := dom.NewElement("div")
		opt.AddClass(ItemClass)
		opt.AppendChild(dom.NewText(item.Label))
		opt.AddEventListener(dom.EventClick, func(*dom.Event) { s.run(i) })
		el.AppendChild(opt)
	}
	el.AddEventListener(dom.EventKeyDown, s.onKeyDown)

	s.open = m
	m.hide = s.popups.AddAsModalPopup(el, true, func() {
		if s.open == m {
			s.open = nil
		}
	})
	if s.anchor != nil {
		if a := s.anchor(row, col); a != nil {
			s.popups.PositionOver(a, el, true)
		}
	}
	s.highlight(0)
	s.doc.Focus(el)
}

// Close hides the open menu.
func (s *Service) Close() {
	if s.open != nil {
		s.open.hide()
	}
}

func (s *Service) onKeyDown(ev *dom.Event) {
	m := s.open
	if m == nil {
		return
	}
	switch ev.Key.Key {
	case input.KeyUp:
		s.highlight((m.active + len(m.items) - 1) % len(m.items))
	case input.KeyDown:
		s.highlight((m.active + 1) % len(m.items))
	case input.KeyEnter:
		s.run(m.active)
	case input.KeyEscape:
		s.Close()
	default:
		return
	}
	ev.PreventDefault()
	ev.StopPropagation()
}

func (s *Service) highlight(i int) {
	m := s.open
	m.active = i
	for j, child := range m.el.Children() {
		child.SetClass(ActiveItemClass, j == i)
	}
}

func (s *Service) run(i int) {
	m := s.open
	if m == nil || i < 0 || i >= len(m.items) {
		return
	}
	action := m.items[i].Action
	s.Close()
	action()
}

func (s *Service) copyCell(row *grid.RowNode, col *grid.Column, value any) {
	if !s.copy(cast.ToString(value)) {
		return
	}
	s.bus.Publish(grid.NewFlashCellsEvent(grid.NewCellIdentity(row.RowIndex, col, row.Floating)))
}

func (s *Service) copyRow(row *grid.RowNode) {
	cols := s.columns.Columns()
	parts := make([]string, 0, len(cols))
	cells := make([]grid.CellIdentity, 0, len(cols))
	for _, col := range cols {
		parts = append(parts, cast.ToString(s.values.GetValue(col, row.Data, row)))
		cells = append(cells, grid.NewCellIdentity(row.RowIndex, col, row.Floating))
	}
	if !s.copy(strings.Join(parts, "\t")) {
		return
	}
	s.bus.Publish(grid.NewFlashCellsEvent(cells...))
}

func (s *Service) copy(text string) bool {
	if err := s.write(text); err != nil {
		s.logger.Warn("clipboard write failed", "error", err)
		return false
	}
	return true
}
