// Package config is the interactive editor behind `cellgrid config`.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Iron-Ham/cellgrid/internal/config"
	"github.com/Iron-Ham/cellgrid/internal/tui/styles"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
)

// Category represents a group of settings
type Category struct {
	Name  string
	Items []config.Setting
}

// chromeLines is the height taken by everything around the settings list:
// header, config path, description, messages, help bar and the scroll
// indicators.
const chromeLines = 12

// minListLines is the fewest setting lines shown however small the window.
const minListLines = 5

// Model is the Bubbletea model for the interactive config UI
type Model struct {
	categories     []Category
	categoryIndex  int
	itemIndex      int
	scrollOffset   int
	width          int
	height         int
	editing        bool
	textInput      textinput.Model
	selectIndex    int // For select-type options
	errorMsg       string
	infoMsg        string
	quitting       bool
	configModified bool

	// save persists viper's settings
	save func() error
}

// New creates a new config model
func New() Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 40

	return Model{
		categories: groupSettings(config.Settings()),
		textInput:  ti,
		save:       writeConfig,
	}
}

// groupSettings groups settings by category, keeping first-seen order.
func groupSettings(settings []config.Setting) []Category {
	var cats []Category
	index := map[string]int{}
	for _, s := range settings {
		i, ok := index[s.Category]
		if !ok {
			i = len(cats)
			index[s.Category] = i
			cats = append(cats, Category{Name: s.Category})
		}
		cats[i].Items = append(cats[i].Items, s)
	}
	return cats
}

func writeConfig() error {
	if err := os.MkdirAll(config.ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(config.ConfigFile()); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureSelectionVisible(m.availableLines())
		return m, nil

	case tea.KeyMsg:
		// Clear messages on any key
		m.errorMsg = ""
		m.infoMsg = ""

		if m.editing {
			return m.handleEditingKeypress(msg)
		}
		return m.handleKeypress(msg)
	}

	return m, nil
}

func (m Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.configModified {
			m.infoMsg = "Changes saved!"
		}
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		m.moveUp()

	case "down", "j":
		m.moveDown()

	case "ctrl+u", "pgup":
		for range m.availableLines() / 2 {
			m.moveUp()
		}

	case "ctrl+d", "pgdown":
		for range m.availableLines() / 2 {
			m.moveDown()
		}

	case "g", "home":
		m.categoryIndex, m.itemIndex = 0, 0

	case "G", "end":
		m.categoryIndex = len(m.categories) - 1
		m.itemIndex = len(m.categories[m.categoryIndex].Items) - 1

	case "tab":
		// Move to next category
		m.categoryIndex = (m.categoryIndex + 1) % len(m.categories)
		m.itemIndex = 0

	case "shift+tab":
		// Move to previous category
		m.categoryIndex = (m.categoryIndex - 1 + len(m.categories)) % len(m.categories)
		m.itemIndex = 0

	case "enter", " ":
		item := m.currentItem()
		switch item.Kind {
		case config.KindBool:
			// Toggle boolean directly
			viper.Set(item.Key, !viper.GetBool(item.Key))
			m.saveConfig()
		case config.KindSelect:
			m.editing = true
			m.selectIndex = m.getCurrentSelectIndex()
		default:
			m.editing = true
			m.textInput.SetValue(m.getDisplayValue(item))
			m.textInput.Focus()
		}

	case "r":
		m.resetCurrentToDefault()
	}

	m.ensureSelectionVisible(m.availableLines())
	return m, nil
}

// moveUp selects the previous item, wrapping into the previous category.
func (m *Model) moveUp() {
	m.itemIndex--
	if m.itemIndex < 0 {
		m.categoryIndex--
		if m.categoryIndex < 0 {
			m.categoryIndex = len(m.categories) - 1
		}
		m.itemIndex = len(m.categories[m.categoryIndex].Items) - 1
	}
}

// moveDown selects the next item, wrapping into the next category.
func (m *Model) moveDown() {
	m.itemIndex++
	if m.itemIndex >= len(m.categories[m.categoryIndex].Items) {
		m.categoryIndex++
		if m.categoryIndex >= len(m.categories) {
			m.categoryIndex = 0
		}
		m.itemIndex = 0
	}
}

func (m Model) handleEditingKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := m.currentItem()

	switch msg.String() {
	case "esc":
		m.editing = false
		m.textInput.SetValue("")
		return m, nil

	case "enter":
		if item.Kind == config.KindSelect {
			viper.Set(item.Key, item.Options[m.selectIndex])
			m.saveConfig()
			m.editing = false
			return m, nil
		}
		value, err := item.Parse(m.textInput.Value())
		if err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		viper.Set(item.Key, value)
		m.saveConfig()
		m.editing = false
		m.textInput.SetValue("")
		return m, nil

	case "up", "k":
		if item.Kind == config.KindSelect {
			m.selectIndex = (m.selectIndex - 1 + len(item.Options)) % len(item.Options)
			return m, nil
		}

	case "down", "j":
		if item.Kind == config.KindSelect {
			m.selectIndex = (m.selectIndex + 1) % len(item.Options)
			return m, nil
		}
	}

	if item.Kind != config.KindSelect {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// availableLines is how many lines of the settings list fit the window.
func (m Model) availableLines() int {
	return max(m.height-chromeLines, minListLines)
}

// totalLines counts the lines of the settings list: a header per category,
// its items and a blank line after it.
func (m Model) totalLines() int {
	n := 0
	for _, cat := range m.categories {
		n += len(cat.Items) + 2
	}
	return n
}

// currentSelectionLine is the list line of the selected item.
func (m Model) currentSelectionLine() int {
	line := 0
	for ci := 0; ci < m.categoryIndex; ci++ {
		line += len(m.categories[ci].Items) + 2
	}
	return line + 1 + m.itemIndex
}

// ensureSelectionVisible scrolls the list so the selected item is inside a
// window of available lines.
func (m *Model) ensureSelectionVisible(available int) {
	line := m.currentSelectionLine()
	if line < m.scrollOffset {
		// Show the category header along with its first item.
		m.scrollOffset = max(line-1, 0)
		if m.itemIndex > 0 {
			m.scrollOffset = line
		}
	}
	if line >= m.scrollOffset+available {
		m.scrollOffset = line - available + 1
	}
	if limit := max(m.totalLines()-available, 0); m.scrollOffset > limit {
		m.scrollOffset = limit
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	st := styles.GetActiveTheme()
	var b strings.Builder

	// Header
	b.WriteString(st.HelpTitle.Width(m.width - 4).Render("cellgrid configuration"))
	b.WriteString("\n\n")

	// Config file path
	configPath := viper.ConfigFileUsed()
	if configPath == "" {
		configPath = config.ConfigFile() + " (not created)"
	}
	b.WriteString(st.Muted.Render(fmt.Sprintf("Config file: %s", configPath)))
	b.WriteString("\n")

	lines := m.listLines(st)
	available := m.availableLines()
	start := min(m.scrollOffset, len(lines))
	end := min(start+available, len(lines))

	if start > 0 {
		b.WriteString(st.Muted.Render("  ▲ more"))
	}
	b.WriteString("\n")
	for _, l := range lines[start:end] {
		b.WriteString(l)
		b.WriteString("\n")
	}
	if end < len(lines) {
		b.WriteString(st.Muted.Render("  ▼ more"))
	}
	b.WriteString("\n")

	// Edit overlay or description
	if m.editing {
		b.WriteString(m.renderEditOverlay(st))
	} else {
		b.WriteString(st.Muted.Render(m.currentItem().Description))
		b.WriteString("\n")
	}

	// Error/Info messages
	if m.errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(st.ErrorMsg.Render("Error: " + m.errorMsg))
	}
	if m.infoMsg != "" {
		b.WriteString("\n")
		b.WriteString(st.Secondary.Render(m.infoMsg))
	}

	// Help bar
	b.WriteString("\n")
	b.WriteString(m.renderHelp(st))

	return b.String()
}

// listLines renders every line of the settings list.
func (m Model) listLines(st *styles.ThemedStyles) []string {
	lines := make([]string, 0, m.totalLines())
	for ci, cat := range m.categories {
		isActiveCategory := ci == m.categoryIndex

		catStyle := st.Muted.Bold(true)
		if isActiveCategory {
			catStyle = st.Primary.Bold(true)
		}
		lines = append(lines, catStyle.Render(fmt.Sprintf("[ %s ]", cat.Name)))

		for ii, item := range cat.Items {
			lines = append(lines, m.renderItem(st, item, isActiveCategory && ii == m.itemIndex))
		}
		lines = append(lines, "")
	}
	return lines
}

func (m Model) renderItem(st *styles.ThemedStyles, item config.Setting, selected bool) string {
	value := m.getDisplayValue(item)
	if value == "" {
		value = "(empty)"
	}

	label := item.Label
	if len(label) > 25 {
		label = label[:22] + "..."
	}
	paddedLabel := fmt.Sprintf("%-25s", label)

	if selected {
		cursor := st.Secondary.Render(">")
		return fmt.Sprintf("  %s %s  %s", cursor, st.Text.Bold(true).Render(paddedLabel), st.Primary.Render(value))
	}
	return fmt.Sprintf("    %s  %s", st.Muted.Render(paddedLabel), st.Text.Render(value))
}

func (m Model) renderEditOverlay(st *styles.ThemedStyles) string {
	item := m.currentItem()

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(st.PrimaryColor).
		Padding(1, 2).
		Width(50)

	var content strings.Builder
	if item.Kind == config.KindSelect {
		fmt.Fprintf(&content, "Select %s:\n\n", item.Label)
		for i, opt := range item.Options {
			if i == m.selectIndex {
				content.WriteString(st.MenuItemActive.Render(fmt.Sprintf(" > %s ", opt)) + "\n")
			} else {
				content.WriteString(st.MenuItem.Render(fmt.Sprintf("   %s ", opt)) + "\n")
			}
		}
		content.WriteString("\n" + st.Muted.Render("j/k or arrows to select, enter to confirm, esc to cancel"))
	} else {
		fmt.Fprintf(&content, "Edit %s:\n\n", item.Label)
		content.WriteString(m.textInput.View())
		content.WriteString("\n\n" + st.Muted.Render("enter to save, esc to cancel"))
	}

	return "\n" + borderStyle.Render(content.String())
}

func (m Model) renderHelp(st *styles.ThemedStyles) string {
	key := st.HelpKey.Render
	if m.editing {
		return st.StatusBar.Render(key("enter") + " save  " + key("esc") + " cancel")
	}
	return st.StatusBar.Render(
		key("j/k") + " navigate  " +
			key("tab") + " next category  " +
			key("enter/space") + " edit  " +
			key("r") + " reset  " +
			key("q") + " quit",
	)
}

func (m Model) currentItem() config.Setting {
	return m.categories[m.categoryIndex].Items[m.itemIndex]
}

func (m Model) getDisplayValue(item config.Setting) string {
	switch item.Kind {
	case config.KindBool:
		return fmt.Sprintf("%v", viper.GetBool(item.Key))
	case config.KindInt:
		return fmt.Sprintf("%d", viper.GetInt(item.Key))
	default:
		return viper.GetString(item.Key)
	}
}

func (m Model) getCurrentSelectIndex() int {
	item := m.currentItem()
	current := viper.GetString(item.Key)
	for i, opt := range item.Options {
		if opt == current {
			return i
		}
	}
	return 0
}

func (m *Model) saveConfig() {
	if err := m.save(); err != nil {
		m.errorMsg = err.Error()
		return
	}
	m.infoMsg = "Saved!"
	m.configModified = true
}

func (m *Model) resetCurrentToDefault() {
	item := m.currentItem()
	viper.Set(item.Key, item.Default)
	m.saveConfig()
	if m.errorMsg == "" {
		m.infoMsg = fmt.Sprintf("Reset %s to default", item.Label)
	}
}

// Run starts the interactive config UI
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
