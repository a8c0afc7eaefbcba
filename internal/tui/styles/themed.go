package styles

import "github.com/charmbracelet/lipgloss"

// ThemedStyles contains all the lipgloss styles built from a color palette.
// This allows styles to be regenerated when the theme changes.
type ThemedStyles struct {
	// Colors from the palette
	PrimaryColor   lipgloss.Color
	SecondaryColor lipgloss.Color
	WarningColor   lipgloss.Color
	ErrorColor     lipgloss.Color
	MutedColor     lipgloss.Color
	SurfaceColor   lipgloss.Color
	TextColor      lipgloss.Color
	BorderColor    lipgloss.Color

	// Convenience styles for colors
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Text      lipgloss.Style

	// Header row
	Header       lipgloss.Style
	HeaderPinned lipgloss.Style

	// Cells. Cell is the base; the state styles are layered on top of it in
	// the order they are listed here.
	Cell      lipgloss.Style
	Group     lipgloss.Style
	Footer    lipgloss.Style
	Selected  lipgloss.Style
	Range     lipgloss.Style
	RangeDeep lipgloss.Style
	Focus     lipgloss.Style
	Editing   lipgloss.Style
	Flash     lipgloss.Style
	Fade      lipgloss.Style
	Highlight lipgloss.Style

	// PinnedEdge draws the separator after the last left-pinned column and
	// before the first right-pinned one.
	PinnedEdge lipgloss.Style

	// Popups
	Popup          lipgloss.Style
	MenuItem       lipgloss.Style
	MenuItemActive lipgloss.Style

	// Value change renderer
	DeltaUp   lipgloss.Style
	DeltaDown lipgloss.Style

	// Status bar and help
	StatusBar  lipgloss.Style
	HelpKey    lipgloss.Style
	HelpBox    lipgloss.Style
	HelpTitle  lipgloss.Style
	WarningMsg lipgloss.Style
	ErrorMsg   lipgloss.Style
}

// NewThemedStyles creates a ThemedStyles from the given color palette.
func NewThemedStyles(p *ColorPalette) *ThemedStyles {
	s := &ThemedStyles{
		PrimaryColor:   p.Primary,
		SecondaryColor: p.Secondary,
		WarningColor:   p.Warning,
		ErrorColor:     p.Error,
		MutedColor:     p.Muted,
		SurfaceColor:   p.Surface,
		TextColor:      p.Text,
		BorderColor:    p.Border,
	}

	s.Primary = lipgloss.NewStyle().Foreground(p.Primary)
	s.Secondary = lipgloss.NewStyle().Foreground(p.Secondary)
	s.Warning = lipgloss.NewStyle().Foreground(p.Warning)
	s.Error = lipgloss.NewStyle().Foreground(p.Error)
	s.Muted = lipgloss.NewStyle().Foreground(p.Muted)
	s.Text = lipgloss.NewStyle().Foreground(p.Text)

	s.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)
	s.HeaderPinned = s.Header.
		Underline(true)

	s.Cell = lipgloss.NewStyle().Foreground(p.Text)
	s.Group = lipgloss.NewStyle().
		Bold(true).
		Background(p.GroupBg)
	s.Footer = lipgloss.NewStyle().
		Italic(true).
		Background(p.GroupBg)
	s.Selected = lipgloss.NewStyle().Foreground(p.Secondary)
	s.Range = lipgloss.NewStyle().Background(p.RangeBg)
	s.RangeDeep = lipgloss.NewStyle().Background(p.RangeDeepBg)
	s.Focus = lipgloss.NewStyle().
		Bold(true).
		Background(p.FocusBg)
	s.Editing = lipgloss.NewStyle().
		Background(p.EditingBg).
		Foreground(p.Text)
	s.Flash = lipgloss.NewStyle().Background(p.FlashBg)
	s.Fade = lipgloss.NewStyle().Background(p.FadeBg)
	s.Highlight = lipgloss.NewStyle().Background(p.HighlightBg)

	s.PinnedEdge = lipgloss.NewStyle().Foreground(p.Border)

	s.Popup = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Background(p.Surface).
		Foreground(p.Text)
	s.MenuItem = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Surface)
	s.MenuItemActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Surface).
		Background(p.Primary)

	s.DeltaUp = lipgloss.NewStyle().Foreground(p.Secondary)
	s.DeltaDown = lipgloss.NewStyle().Foreground(p.Error)

	s.StatusBar = lipgloss.NewStyle().
		Foreground(p.Muted)
	s.HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)
	s.HelpBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	s.HelpTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Secondary)
	s.WarningMsg = lipgloss.NewStyle().
		Foreground(p.Warning)
	s.ErrorMsg = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Error)

	return s
}

// activeTheme holds the currently active themed styles.
var activeTheme = NewThemedStyles(DefaultPalette())

// SetActiveTheme updates the active theme to the specified theme name.
//
// Note: This function is not thread-safe. It is designed to be called only
// from the Bubble Tea event loop, which runs on a single goroutine.
func SetActiveTheme(name ThemeName) {
	activeTheme = NewThemedStyles(GetPalette(name))
}

// GetActiveTheme returns the currently active themed styles.
func GetActiveTheme() *ThemedStyles {
	return activeTheme
}
