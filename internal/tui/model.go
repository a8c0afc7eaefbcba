package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/cellgrid/internal/cell"
	"github.com/Iron-Ham/cellgrid/internal/config"
	"github.com/Iron-Ham/cellgrid/internal/dom"
	"github.com/Iron-Ham/cellgrid/internal/grid"
	"github.com/Iron-Ham/cellgrid/internal/input"
	"github.com/Iron-Ham/cellgrid/internal/logging"
	"github.com/Iron-Ham/cellgrid/internal/tui/keymap"
	"github.com/Iron-Ham/cellgrid/internal/tui/styles"
)

// Rows scrolled per mouse wheel step.
const wheelStep = 3

// Messages

type configChangedMsg struct{ cfg *config.Config }
type configErrorMsg struct{ err error }

// Model is the Bubbletea model of the grid host. It translates terminal
// input into document events and paints the grid.
type Model struct {
	view    *GridView
	painter *Painter
	sched   *Scheduler
	keys    *keymap.Keymap
	clicks  *input.ClickTracker
	logger  *logging.Logger
	now     func() time.Time

	mode     keymap.Mode
	ready    bool
	quitting bool
	infoMsg  string
	errorMsg string
}

// NewModel creates the model for view. The painter must be the locator the
// view positions popups with.
func NewModel(view *GridView, painter *Painter, sched *Scheduler, cfg *config.Config, logger *logging.Logger) Model {
	if logger == nil {
		logger = logging.NopLogger()
	}
	logger = logger.WithComponent("tui")
	painter.SetClassStyles(cfg.TUI.ClassStyles)
	return Model{
		view:    view,
		painter: painter,
		sched:   sched,
		keys:    buildKeymap(cfg.TUI.Keys, logger),
		clicks:  input.NewClickTracker(cfg.TUI.DoubleClick()),
		logger:  logger,
		now:     time.Now,
		mode:    keymap.ModeGrid,
	}
}

// buildKeymap applies the configured rebinds to the default keymap. A
// command is rebound in every mode that has it.
func buildKeymap(rebinds map[string]string, logger *logging.Logger) *keymap.Keymap {
	km := keymap.DefaultKeymap()
	for command, spec := range rebinds {
		var lastErr error
		bound := false
		for _, mode := range []keymap.Mode{keymap.ModeGrid, keymap.ModeHelp} {
			if err := km.Rebind(mode, keymap.Command(command), spec); err != nil {
				lastErr = err
				continue
			}
			bound = true
		}
		if !bound {
			logger.Warn("ignoring key binding", "command", command, "key", spec, "error", lastErr)
		}
	}
	return km
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeypress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.view.SetViewport(msg.Width, msg.Height)
		if !m.ready {
			m.ready = true
			m.view.FocusFirst()
		}
		return m, nil

	case timerMsg:
		m.sched.fire(msg.id)
		return m, nil

	case postMsg:
		msg.fn()
		return m, nil

	case configChangedMsg:
		return m.applyConfig(msg.cfg), nil

	case configErrorMsg:
		m.errorMsg = "Config not reloaded: " + msg.err.Error()
		m.logger.Warn("config reload failed", "error", msg.err)
		return m, nil
	}
	return m, nil
}

// applyConfig puts a reloaded configuration into effect. Cells read the
// grid options on every use, so they pick the change up immediately.
func (m Model) applyConfig(cfg *config.Config) Model {
	cfg.Grid.ApplyTo(m.view.Options())
	styles.SetActiveTheme(styles.ThemeName(cfg.TUI.Theme))
	m.view.SetColumnWidth(cfg.TUI.ColumnWidth)
	m.painter.SetClassStyles(cfg.TUI.ClassStyles)
	m.clicks = input.NewClickTracker(cfg.TUI.DoubleClick())
	m.keys = buildKeymap(cfg.TUI.Keys, m.logger)
	m.infoMsg = "Configuration reloaded"
	m.errorMsg = ""
	m.logger.Info("config reloaded")
	return m
}

// handleKeypress runs host commands and sends every other key to the
// focused element.
func (m Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.infoMsg = ""

	// Printable keys belong to an open editor even when they are bound.
	if msg.Type != tea.KeyRunes || !m.editing() {
		if command, ok := m.keys.GetBinding(msg, m.mode); ok {
			return m.runCommand(command)
		}
	}
	if m.mode != keymap.ModeGrid {
		return m, nil
	}

	key, ok := input.FromKeyMsg(msg)
	if !ok {
		return m, nil
	}
	m.view.Document().DispatchKey(key)
	if c, ok := m.view.FocusedCell(); ok {
		m.view.EnsureVisible(c.Identity())
	}
	return m, nil
}

func (m Model) editing() bool {
	c, ok := m.view.FocusedCell()
	return ok && c.IsEditing()
}

func (m Model) runCommand(command keymap.Command) (tea.Model, tea.Cmd) {
	switch command {
	case keymap.CmdQuit:
		m.quitting = true
		return m, tea.Quit
	case keymap.CmdToggleHelp:
		if m.mode == keymap.ModeHelp {
			m.mode = keymap.ModeGrid
		} else {
			m.mode = keymap.ModeHelp
		}
	case keymap.CmdCloseHelp:
		m.mode = keymap.ModeGrid
	case keymap.CmdRefreshCells:
		m.view.RefreshCells()
		m.infoMsg = "Cells refreshed"
	case keymap.CmdFlashFocused:
		m.flashSelection()
	case keymap.CmdClearRange:
		m.view.Ranges().Clear()
	case keymap.CmdPageUp:
		m.view.MovePage(false)
	case keymap.CmdPageDown:
		m.view.MovePage(true)
	}
	return m, nil
}

// flashSelection flashes the cells of every range, or the focused cell when
// there are no ranges.
func (m Model) flashSelection() {
	var cells []grid.CellIdentity
	for _, rg := range m.view.Ranges().Ranges() {
		cells = append(cells, m.view.Ranges().Cells(rg)...)
	}
	if len(cells) == 0 {
		if id, ok := m.view.Focus().FocusedCell(); ok {
			cells = append(cells, id)
		}
	}
	m.view.FlashCells(cells...)
}

// handleMouse turns terminal mouse presses into the events a browser would
// fire: mousedown, then focus moving to the nearest focusable element, then
// click and, for a second press in quick succession, dblclick.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != keymap.ModeGrid {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll(msg.Shift, -wheelStep)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scroll(msg.Shift, wheelStep)
		return m, nil
	case tea.MouseButtonWheelLeft:
		m.view.ScrollColumns(-wheelStep)
		return m, nil
	case tea.MouseButtonWheelRight:
		m.view.ScrollColumns(wheelStep)
		return m, nil
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	m.infoMsg = ""
	doc := m.view.Document()
	target := m.painter.HitTest(msg.X, msg.Y)
	ev := input.MouseEvent{X: msg.X, Y: msg.Y, Shift: msg.Shift, Ctrl: msg.Ctrl, Alt: msg.Alt}

	switch msg.Button {
	case tea.MouseButtonLeft:
		m.view.Popups().HandleMouseDown(target)
		if c, ok := m.view.CellAt(target); ok && msg.Shift {
			m.view.ExtendRange(c.Identity())
		}

		ev.Kind = input.MouseDown
		if !doc.DispatchMouse(target, ev) {
			doc.Focus(focusable(target))
		}

		ev.Kind = input.MouseClick
		doc.DispatchMouse(target, ev)
		if m.clicks.Record(msg.X, msg.Y, m.now()) == 2 {
			ev.Kind = input.MouseDoubleClick
			doc.DispatchMouse(target, ev)
		}

	case tea.MouseButtonRight:
		m.view.Popups().HandleMouseDown(target)
		m.clicks.Reset()
		ev.Kind = input.MouseContextMenu
		doc.DispatchMouse(target, ev)
	}
	return m, nil
}

func (m Model) scroll(horizontal bool, delta int) {
	if horizontal {
		m.view.ScrollColumns(delta)
		return
	}
	m.view.ScrollRows(delta)
}

// focusable returns el or its nearest ancestor with a tabindex, or nil.
func focusable(el *dom.Element) *dom.Element {
	for ; el != nil; el = el.Parent() {
		if _, ok := el.Attribute("tabindex"); ok {
			return el
		}
	}
	return nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	st := styles.GetActiveTheme()
	if m.mode == keymap.ModeHelp {
		return m.renderHelp(st)
	}
	return m.painter.Paint(m.view, st, m.statusLine(st))
}

// statusLine shows the focused cell, its edit state and the latest message.
func (m Model) statusLine(st *styles.ThemedStyles) string {
	var parts []string
	if c, ok := m.view.FocusedCell(); ok {
		parts = append(parts, cellLabel(c.Identity()))
		if c.State() != cell.StateDisplaying {
			parts = append(parts, c.State().String())
		}
	}
	switch {
	case m.errorMsg != "":
		parts = append(parts, st.ErrorMsg.Render(m.errorMsg))
	case m.infoMsg != "":
		parts = append(parts, m.infoMsg)
	}
	parts = append(parts, st.Muted.Render("F1 help"))
	return " " + strings.Join(parts, "  ")
}

func cellLabel(id grid.CellIdentity) string {
	if id.Floating != grid.FloatingNone {
		return fmt.Sprintf("%s %s:%d", id.ColumnID, id.Floating, id.RowIndex)
	}
	return fmt.Sprintf("%s:%d", id.ColumnID, id.RowIndex)
}

// cellKeys are handled by the cells themselves rather than the keymap.
var cellKeys = [][2]string{
	{"enter, f2", "Start or finish editing"},
	{"esc", "Cancel editing"},
	{"tab, shift+tab", "Next or previous cell"},
	{"arrows", "Move focus"},
	{"space", "Toggle row selection"},
	{"delete, backspace", "Clear and edit"},
	{"any character", "Edit starting with it"},
}

// renderHelp draws the key reference centred on screen.
func (m Model) renderHelp(st *styles.ThemedStyles) string {
	w, h := m.view.Viewport()

	var b strings.Builder
	b.WriteString(st.HelpTitle.Render("Keys"))
	b.WriteString("\n")

	writeRow := func(keys, desc string) {
		b.WriteString(st.HelpKey.Render(fmt.Sprintf("%-18s", keys)))
		b.WriteString(" " + desc + "\n")
	}

	byCategory := m.keys.GetBindingsByCategory(keymap.ModeGrid)
	for _, category := range m.keys.GetCategories(keymap.ModeGrid) {
		b.WriteString("\n" + st.Muted.Render(category) + "\n")
		var order []keymap.Command
		keys := map[keymap.Command][]string{}
		descs := map[keymap.Command]string{}
		for _, binding := range byCategory[category] {
			if _, seen := keys[binding.Command]; !seen {
				order = append(order, binding.Command)
				descs[binding.Command] = binding.Description
			}
			keys[binding.Command] = append(keys[binding.Command], binding.String())
		}
		for _, command := range order {
			writeRow(strings.Join(keys[command], ", "), descs[command])
		}
	}

	b.WriteString("\n" + st.Muted.Render("In a cell") + "\n")
	for _, k := range cellKeys {
		writeRow(k[0], k[1])
	}

	box := st.HelpBox.Render(strings.TrimRight(b.String(), "\n"))
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
}
