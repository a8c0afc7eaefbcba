package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cast"
)

// Kind is the value type of a setting.
type Kind string

const (
	KindBool   Kind = "bool"
	KindInt    Kind = "int"
	KindString Kind = "string"
	KindSelect Kind = "select"
)

// Setting describes a scalar configuration key that can be changed from the
// command line or the interactive editor. Map-valued keys (tui.keys,
// tui.class_styles) are edited in the config file.
type Setting struct {
	Key         string
	Label       string
	Description string
	Kind        Kind
	Options     []string // For KindSelect
	Category    string
	Default     any
}

// Settings returns every editable setting grouped by category, in display order.
func Settings() []Setting {
	d := Default()
	return []Setting{
		{Key: "grid.single_click_edit", Label: "Single Click Edit", Description: "Start editing on a single click instead of a double click", Kind: KindBool, Category: "Grid", Default: d.Grid.SingleClickEdit},
		{Key: "grid.suppress_cell_selection", Label: "Suppress Cell Selection", Description: "Cells cannot be focused", Kind: KindBool, Category: "Grid", Default: d.Grid.SuppressCellSelection},
		{Key: "grid.row_selection", Label: "Row Selection", Description: "Space toggles the selection of the focused row", Kind: KindBool, Category: "Grid", Default: d.Grid.RowSelection},
		{Key: "grid.enable_cell_change_flash", Label: "Flash Changes", Description: "Flash every cell whose value changes", Kind: KindBool, Category: "Grid", Default: d.Grid.EnableCellChangeFlash},
		{Key: "grid.group_include_footer", Label: "Group Footers", Description: "Show group aggregates in a footer row", Kind: KindBool, Category: "Grid", Default: d.Grid.GroupIncludeFooter},
		{Key: "grid.group_suppress_blank_header", Label: "Keep Group Header Values", Description: "Keep group row values when footers are shown", Kind: KindBool, Category: "Grid", Default: d.Grid.GroupSuppressBlankHeader},
		{Key: "grid.suppress_context_menu", Label: "Suppress Context Menu", Description: "Disable the right-click cell menu", Kind: KindBool, Category: "Grid", Default: d.Grid.SuppressContextMenu},
		{Key: "grid.flash_delay_ms", Label: "Flash Delay (ms)", Description: "How long the flash highlight stays on", Kind: KindInt, Category: "Grid", Default: d.Grid.FlashDelayMs},
		{Key: "grid.fade_delay_ms", Label: "Fade Delay (ms)", Description: "How long the flash takes to fade", Kind: KindInt, Category: "Grid", Default: d.Grid.FadeDelayMs},

		{Key: "tui.theme", Label: "Theme", Description: "Color theme", Kind: KindSelect, Options: ValidThemes(), Category: "TUI", Default: d.TUI.Theme},
		{Key: "tui.column_width", Label: "Column Width", Description: "Width of columns that do not set their own", Kind: KindInt, Category: "TUI", Default: d.TUI.ColumnWidth},
		{Key: "tui.double_click_ms", Label: "Double Click (ms)", Description: "Longest gap between the clicks of a double click", Kind: KindInt, Category: "TUI", Default: d.TUI.DoubleClickMs},

		{Key: "templates.base_dir", Label: "Base Directory", Description: "Directory relative template paths resolve against (empty = working directory)", Kind: KindString, Category: "Templates", Default: d.Templates.BaseDir},
		{Key: "templates.http_timeout_ms", Label: "HTTP Timeout (ms)", Description: "Timeout for templates fetched over http(s)", Kind: KindInt, Category: "Templates", Default: d.Templates.HTTPTimeoutMs},

		{Key: "logging.enabled", Label: "Enabled", Description: "Write a debug log file", Kind: KindBool, Category: "Logging", Default: d.Logging.Enabled},
		{Key: "logging.level", Label: "Level", Description: "Minimum level written to the log", Kind: KindSelect, Options: ValidLogLevels(), Category: "Logging", Default: d.Logging.Level},
		{Key: "logging.dir", Label: "Directory", Description: "Log directory (empty = user cache dir, ~ is expanded)", Kind: KindString, Category: "Logging", Default: d.Logging.Dir},
	}
}

// LookupSetting finds the setting for key.
func LookupSetting(key string) (Setting, bool) {
	for _, s := range Settings() {
		if s.Key == key {
			return s, true
		}
	}
	return Setting{}, false
}

// SettingKeys returns the keys of every setting in display order.
func SettingKeys() []string {
	settings := Settings()
	keys := make([]string, len(settings))
	for i, s := range settings {
		keys[i] = s.Key
	}
	return keys
}

// Parse converts value to the setting's type.
func (s Setting) Parse(value string) (any, error) {
	switch s.Kind {
	case KindBool:
		if value != "true" && value != "false" {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", s.Key)
		}
		return value == "true", nil
	case KindInt:
		n, err := cast.ToIntE(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", s.Key)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid value for %s: must be non-negative", s.Key)
		}
		return n, nil
	case KindSelect:
		if !slices.Contains(s.Options, value) {
			return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				s.Key, value, strings.Join(s.Options, ", "))
		}
		return value, nil
	default:
		return value, nil
	}
}
