package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault ThemeName = "default" // Purple/green dark theme
	ThemeMonokai ThemeName = "monokai" // Classic Monokai editor colors
	ThemeDracula ThemeName = "dracula" // Dracula theme colors
	ThemeNord    ThemeName = "nord"    // Nord theme - cool blue-gray
)

// BuiltinThemes returns all built-in theme names.
func BuiltinThemes() []string {
	return []string{
		string(ThemeDefault),
		string(ThemeMonokai),
		string(ThemeDracula),
		string(ThemeNord),
	}
}

// IsValidTheme checks if a theme name is a built-in theme.
func IsValidTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// ColorPalette defines the color scheme for a theme.
type ColorPalette struct {
	// Primary accent color (headers, the focused cell border)
	Primary lipgloss.Color
	// Secondary accent color (selected rows, positive deltas)
	Secondary lipgloss.Color
	// Warning color (status messages)
	Warning lipgloss.Color
	// Error color (negative deltas, errors)
	Error lipgloss.Color
	// Muted color (de-emphasized text, empty cells)
	Muted lipgloss.Color
	// Surface color (popup backgrounds)
	Surface lipgloss.Color
	// Text color (primary text)
	Text lipgloss.Color
	// Border color (pinned column separators, popup borders)
	Border lipgloss.Color

	// Cell state backgrounds
	FocusBg     lipgloss.Color
	RangeBg     lipgloss.Color
	RangeDeepBg lipgloss.Color
	EditingBg   lipgloss.Color
	FlashBg     lipgloss.Color
	FadeBg      lipgloss.Color
	HighlightBg lipgloss.Color
	GroupBg     lipgloss.Color
}

// DefaultPalette returns the default purple/green dark theme palette.
func DefaultPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#A78BFA"), // Purple (violet-400)
		Secondary: lipgloss.Color("#10B981"), // Green
		Warning:   lipgloss.Color("#F59E0B"), // Amber
		Error:     lipgloss.Color("#F87171"), // Red (red-400)
		Muted:     lipgloss.Color("#9CA3AF"), // Gray
		Surface:   lipgloss.Color("#1F2937"), // Dark surface
		Text:      lipgloss.Color("#F9FAFB"), // Light text
		Border:    lipgloss.Color("#6B7280"), // Gray-500

		FocusBg:     lipgloss.Color("#4C1D95"), // Violet-900
		RangeBg:     lipgloss.Color("#1E3A8A"), // Blue-900
		RangeDeepBg: lipgloss.Color("#1D4ED8"), // Blue-700
		EditingBg:   lipgloss.Color("#374151"), // Gray-700
		FlashBg:     lipgloss.Color("#854D0E"), // Dark yellow
		FadeBg:      lipgloss.Color("#422006"), // Darker yellow
		HighlightBg: lipgloss.Color("#C2410C"), // Dark orange
		GroupBg:     lipgloss.Color("#111827"), // Gray-900
	}
}

// MonokaiPalette returns the classic Monokai editor theme palette.
func MonokaiPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#F92672"), // Monokai pink/magenta
		Secondary: lipgloss.Color("#A6E22E"), // Monokai green
		Warning:   lipgloss.Color("#E6DB74"), // Monokai yellow
		Error:     lipgloss.Color("#F92672"), // Monokai pink (same as primary)
		Muted:     lipgloss.Color("#75715E"), // Monokai comment gray
		Surface:   lipgloss.Color("#272822"), // Monokai background
		Text:      lipgloss.Color("#F8F8F2"), // Monokai foreground
		Border:    lipgloss.Color("#49483E"), // Monokai selection

		FocusBg:     lipgloss.Color("#49483E"), // Selection
		RangeBg:     lipgloss.Color("#3E3D32"), // Line highlight
		RangeDeepBg: lipgloss.Color("#575642"),
		EditingBg:   lipgloss.Color("#383830"),
		FlashBg:     lipgloss.Color("#75715E"), // Comment gray
		FadeBg:      lipgloss.Color("#3E3D32"),
		HighlightBg: lipgloss.Color("#FD971F"), // Orange
		GroupBg:     lipgloss.Color("#1E1F1C"),
	}
}

// DraculaPalette returns the Dracula theme palette.
func DraculaPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#BD93F9"), // Dracula purple
		Secondary: lipgloss.Color("#50FA7B"), // Dracula green
		Warning:   lipgloss.Color("#F1FA8C"), // Dracula yellow
		Error:     lipgloss.Color("#FF5555"), // Dracula red
		Muted:     lipgloss.Color("#6272A4"), // Dracula comment
		Surface:   lipgloss.Color("#282A36"), // Dracula background
		Text:      lipgloss.Color("#F8F8F2"), // Dracula foreground
		Border:    lipgloss.Color("#44475A"), // Dracula selection

		FocusBg:     lipgloss.Color("#44475A"), // Selection
		RangeBg:     lipgloss.Color("#343746"),
		RangeDeepBg: lipgloss.Color("#4D5066"),
		EditingBg:   lipgloss.Color("#21222C"),
		FlashBg:     lipgloss.Color("#6272A4"), // Comment
		FadeBg:      lipgloss.Color("#383A59"),
		HighlightBg: lipgloss.Color("#FF79C6"), // Pink
		GroupBg:     lipgloss.Color("#191A21"),
	}
}

// NordPalette returns the Nord theme palette.
func NordPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#88C0D0"), // Nord frost (cyan)
		Secondary: lipgloss.Color("#A3BE8C"), // Nord aurora green
		Warning:   lipgloss.Color("#EBCB8B"), // Nord aurora yellow
		Error:     lipgloss.Color("#BF616A"), // Nord aurora red
		Muted:     lipgloss.Color("#4C566A"), // Nord polar night 3
		Surface:   lipgloss.Color("#2E3440"), // Nord polar night 0
		Text:      lipgloss.Color("#ECEFF4"), // Nord snow storm 2
		Border:    lipgloss.Color("#3B4252"), // Nord polar night 1

		FocusBg:     lipgloss.Color("#5E81AC"), // Frost deep blue
		RangeBg:     lipgloss.Color("#3B4252"), // Polar night 1
		RangeDeepBg: lipgloss.Color("#434C5E"), // Polar night 2
		EditingBg:   lipgloss.Color("#434C5E"),
		FlashBg:     lipgloss.Color("#D08770"), // Aurora orange
		FadeBg:      lipgloss.Color("#4C566A"),
		HighlightBg: lipgloss.Color("#B48EAD"), // Aurora purple
		GroupBg:     lipgloss.Color("#242933"),
	}
}

// GetPalette returns the color palette for the given theme name.
// Returns the default palette for unknown theme names.
func GetPalette(name ThemeName) *ColorPalette {
	switch name {
	case ThemeMonokai:
		return MonokaiPalette()
	case ThemeDracula:
		return DraculaPalette()
	case ThemeNord:
		return NordPalette()
	default:
		return DefaultPalette()
	}
}
