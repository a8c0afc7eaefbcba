package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Iron-Ham/cellgrid/internal/grid"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config represents the complete cellgrid configuration
type Config struct {
	Grid      GridConfig      `mapstructure:"grid"`
	TUI       TUIConfig       `mapstructure:"tui"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// GridConfig holds the grid-wide options cells consult
type GridConfig struct {
	// SingleClickEdit starts editing on a single click instead of a double click
	SingleClickEdit bool `mapstructure:"single_click_edit"`
	// SuppressCellSelection stops cells from being focusable
	SuppressCellSelection bool `mapstructure:"suppress_cell_selection"`
	// RowSelection lets the space bar toggle the selection of the focused row
	RowSelection bool `mapstructure:"row_selection"`
	// EnableCellChangeFlash flashes every cell whose value changes
	EnableCellChangeFlash bool `mapstructure:"enable_cell_change_flash"`
	// GroupIncludeFooter shows group aggregates in a footer row instead of the group row
	GroupIncludeFooter bool `mapstructure:"group_include_footer"`
	// GroupSuppressBlankHeader keeps group row values when footers are shown
	GroupSuppressBlankHeader bool `mapstructure:"group_suppress_blank_header"`
	// SuppressContextMenu disables the cell context menu
	SuppressContextMenu bool `mapstructure:"suppress_context_menu"`
	// FlashDelayMs is how long the flash class stays on before fading (default: 500)
	FlashDelayMs int `mapstructure:"flash_delay_ms"`
	// FadeDelayMs is how long the fade animation class stays on (default: 1000)
	FadeDelayMs int `mapstructure:"fade_delay_ms"`
}

// TUIConfig controls the terminal host
type TUIConfig struct {
	// Theme is the color theme (default: "default")
	// Options: "default", "monokai", "dracula", "nord"
	Theme string `mapstructure:"theme"`
	// ColumnWidth is the width of columns that do not set their own (default: 16)
	ColumnWidth int `mapstructure:"column_width"`
	// DoubleClickMs is the longest gap between two clicks of a double click (default: 400)
	DoubleClickMs int `mapstructure:"double_click_ms"`
	// Keys rebinds host commands, e.g. {"quit": "ctrl+x"}
	Keys map[string]string `mapstructure:"keys"`
	// ClassStyles styles cells carrying a class, e.g.
	// {"cg-negative": {"color": "red"}}. Viper lowercases the class names.
	ClassStyles map[string]map[string]string `mapstructure:"class_styles"`
}

// TemplatesConfig controls where cell templates referenced by URL are loaded from
type TemplatesConfig struct {
	// BaseDir resolves relative template paths. Empty means the working directory.
	BaseDir string `mapstructure:"base_dir"`
	// HTTPTimeoutMs bounds http(s) template fetches (default: 5000)
	HTTPTimeoutMs int `mapstructure:"http_timeout_ms"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the directory the log file is written to.
	// If empty, defaults to the cellgrid directory under the user cache dir.
	// Supports ~ for home directory expansion.
	Dir string `mapstructure:"dir"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			FlashDelayMs: int(grid.DefaultFlashDelay / time.Millisecond),
			FadeDelayMs:  int(grid.DefaultFadeDelay / time.Millisecond),
		},
		TUI: TUIConfig{
			Theme:         "default",
			ColumnWidth:   16,
			DoubleClickMs: 400,
		},
		Templates: TemplatesConfig{
			BaseDir:       "",
			HTTPTimeoutMs: 5000,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "", // Empty means use the user cache dir
		},
	}
}

// FlashDelay returns the flash delay as a time.Duration
func (c *GridConfig) FlashDelay() time.Duration {
	return time.Duration(c.FlashDelayMs) * time.Millisecond
}

// FadeDelay returns the fade delay as a time.Duration
func (c *GridConfig) FadeDelay() time.Duration {
	return time.Duration(c.FadeDelayMs) * time.Millisecond
}

// Options returns new grid options built from the config
func (c *GridConfig) Options() *grid.Options {
	opts := grid.DefaultOptions()
	c.ApplyTo(opts)
	return opts
}

// ApplyTo copies the config onto opts in place. Cells read options on every
// use, so a running grid picks the change up on its next interaction.
// Callbacks on opts are left alone.
func (c *GridConfig) ApplyTo(opts *grid.Options) {
	opts.SingleClickEdit = c.SingleClickEdit
	opts.SuppressCellSelection = c.SuppressCellSelection
	opts.RowSelection = c.RowSelection
	opts.EnableCellChangeFlash = c.EnableCellChangeFlash
	opts.GroupIncludeFooter = c.GroupIncludeFooter
	opts.GroupSuppressBlankHeader = c.GroupSuppressBlankHeader
	opts.SuppressContextMenu = c.SuppressContextMenu
	opts.FlashDelay = c.FlashDelay()
	opts.FadeDelay = c.FadeDelay()
}

// DoubleClick returns the double click interval as a time.Duration
func (c *TUIConfig) DoubleClick() time.Duration {
	return time.Duration(c.DoubleClickMs) * time.Millisecond
}

// HTTPTimeout returns the template fetch timeout as a time.Duration
func (c *TemplatesConfig) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMs) * time.Millisecond
}

// ResolveDir returns the log directory.
// If Dir is empty, it returns the cellgrid directory under the user cache dir.
// If Dir starts with ~, it expands to the user's home directory.
func (l *LoggingConfig) ResolveDir() string {
	if l.Dir == "" {
		if cache, err := os.UserCacheDir(); err == nil {
			return filepath.Join(cache, "cellgrid")
		}
		return filepath.Join(os.TempDir(), "cellgrid")
	}
	return expandHome(l.Dir)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Grid defaults
	viper.SetDefault("grid.single_click_edit", defaults.Grid.SingleClickEdit)
	viper.SetDefault("grid.suppress_cell_selection", defaults.Grid.SuppressCellSelection)
	viper.SetDefault("grid.row_selection", defaults.Grid.RowSelection)
	viper.SetDefault("grid.enable_cell_change_flash", defaults.Grid.EnableCellChangeFlash)
	viper.SetDefault("grid.group_include_footer", defaults.Grid.GroupIncludeFooter)
	viper.SetDefault("grid.group_suppress_blank_header", defaults.Grid.GroupSuppressBlankHeader)
	viper.SetDefault("grid.suppress_context_menu", defaults.Grid.SuppressContextMenu)
	viper.SetDefault("grid.flash_delay_ms", defaults.Grid.FlashDelayMs)
	viper.SetDefault("grid.fade_delay_ms", defaults.Grid.FadeDelayMs)

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.column_width", defaults.TUI.ColumnWidth)
	viper.SetDefault("tui.double_click_ms", defaults.TUI.DoubleClickMs)
	viper.SetDefault("tui.keys", map[string]string{})
	viper.SetDefault("tui.class_styles", map[string]map[string]string{})

	// Template defaults
	viper.SetDefault("templates.base_dir", defaults.Templates.BaseDir)
	viper.SetDefault("templates.http_timeout_ms", defaults.Templates.HTTPTimeoutMs)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// Watch reloads the configuration whenever the config file changes and hands
// each valid result to onChange. Edits that fail to load or validate go to
// onError and the previous configuration stays in effect. Both callbacks run
// on viper's watcher goroutine.
func Watch(onChange func(*Config), onError func(error)) {
	viper.OnConfigChange(func(e fsnotify.Event) {
		handleChange(e, onChange, onError)
	})
	viper.WatchConfig()
}

func handleChange(e fsnotify.Event, onChange func(*Config), onError func(error)) {
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
		return
	}
	cfg, err := Load()
	if err != nil {
		if onError != nil {
			onError(err)
		}
		return
	}
	if onChange != nil {
		onChange(cfg)
	}
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cellgrid")
	}
	// Fall back to ~/.config/cellgrid
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cellgrid"
	}
	return filepath.Join(home, ".config", "cellgrid")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
