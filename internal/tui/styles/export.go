package styles

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ThemeFile is the YAML form of a theme.
type ThemeFile struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Version     string      `yaml:"version"`
	Colors      ThemeColors `yaml:"colors"`
}

// ThemeColors holds a theme's colors in hex form.
type ThemeColors struct {
	// Base colors
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Warning   string `yaml:"warning"`
	Error     string `yaml:"error"`
	Muted     string `yaml:"muted"`
	Surface   string `yaml:"surface"`
	Text      string `yaml:"text"`
	Border    string `yaml:"border"`

	// Cell state backgrounds
	Cells ThemeCellColors `yaml:"cells"`
}

// ThemeCellColors are the backgrounds of cell states.
type ThemeCellColors struct {
	Focus     string `yaml:"focus"`
	Range     string `yaml:"range"`
	RangeDeep string `yaml:"range_deep"`
	Editing   string `yaml:"editing"`
	Flash     string `yaml:"flash"`
	Fade      string `yaml:"fade"`
	Highlight string `yaml:"highlight"`
	Group     string `yaml:"group"`
}

// ExportTheme returns the named built-in theme as YAML.
func ExportTheme(name ThemeName) ([]byte, error) {
	if !IsValidTheme(string(name)) {
		return nil, fmt.Errorf("unknown theme: %s", name)
	}
	return yaml.Marshal(paletteToThemeFile(string(name), GetPalette(name)))
}

// paletteToThemeFile converts a ColorPalette to a ThemeFile for export.
func paletteToThemeFile(name string, p *ColorPalette) *ThemeFile {
	return &ThemeFile{
		Name:        name,
		Description: fmt.Sprintf("Exported from cellgrid built-in theme '%s'", name),
		Version:     "1",
		Colors: ThemeColors{
			Primary:   string(p.Primary),
			Secondary: string(p.Secondary),
			Warning:   string(p.Warning),
			Error:     string(p.Error),
			Muted:     string(p.Muted),
			Surface:   string(p.Surface),
			Text:      string(p.Text),
			Border:    string(p.Border),
			Cells: ThemeCellColors{
				Focus:     string(p.FocusBg),
				Range:     string(p.RangeBg),
				RangeDeep: string(p.RangeDeepBg),
				Editing:   string(p.EditingBg),
				Flash:     string(p.FlashBg),
				Fade:      string(p.FadeBg),
				Highlight: string(p.HighlightBg),
				Group:     string(p.GroupBg),
			},
		},
	}
}
