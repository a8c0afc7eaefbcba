package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cast"
)

// namedColors maps the CSS color keywords column styles commonly use to
// terminal colors. Anything else is passed to lipgloss as is, so hex
// values and ANSI numbers work too.
var namedColors = map[string]lipgloss.Color{
	"black":   lipgloss.Color("0"),
	"red":     lipgloss.Color("1"),
	"green":   lipgloss.Color("2"),
	"yellow":  lipgloss.Color("3"),
	"blue":    lipgloss.Color("4"),
	"magenta": lipgloss.Color("5"),
	"purple":  lipgloss.Color("5"),
	"cyan":    lipgloss.Color("6"),
	"white":   lipgloss.Color("7"),
	"gray":    lipgloss.Color("8"),
	"grey":    lipgloss.Color("8"),
	"orange":  lipgloss.Color("208"),
}

func cssColor(v string) (lipgloss.Color, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" || v == "inherit" || v == "transparent" {
		return "", false
	}
	if c, ok := namedColors[v]; ok {
		return c, true
	}
	return lipgloss.Color(v), true
}

// FromCSS layers the supported properties of a cell's inline style onto
// base: color, background-color, font-weight, font-style, text-decoration
// and text-align. Unknown properties are ignored.
func FromCSS(base lipgloss.Style, props map[string]string) lipgloss.Style {
	s := base
	for prop, value := range props {
		value = strings.ToLower(strings.TrimSpace(value))
		switch strings.ToLower(prop) {
		case "color":
			if c, ok := cssColor(value); ok {
				s = s.Foreground(c)
			}
		case "background-color", "background":
			if c, ok := cssColor(value); ok {
				s = s.Background(c)
			}
		case "font-weight":
			s = s.Bold(value == "bold" || value == "bolder" || cast.ToInt(value) >= 600)
		case "font-style":
			s = s.Italic(value == "italic" || value == "oblique")
		case "text-decoration":
			s = s.Underline(strings.Contains(value, "underline")).
				Strikethrough(strings.Contains(value, "line-through"))
		case "text-align":
			switch value {
			case "right", "end":
				s = s.Align(lipgloss.Right)
			case "center":
				s = s.Align(lipgloss.Center)
			default:
				s = s.Align(lipgloss.Left)
			}
		}
	}
	return s
}
