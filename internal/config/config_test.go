package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Iron-Ham/cellgrid/internal/grid"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	// Verify default grid config
	if cfg.Grid.SingleClickEdit {
		t.Error("Grid.SingleClickEdit should be false by default")
	}
	if cfg.Grid.FlashDelayMs != 500 {
		t.Errorf("Grid.FlashDelayMs = %d, want 500", cfg.Grid.FlashDelayMs)
	}
	if cfg.Grid.FadeDelayMs != 1000 {
		t.Errorf("Grid.FadeDelayMs = %d, want 1000", cfg.Grid.FadeDelayMs)
	}

	// Verify default TUI config
	if cfg.TUI.Theme != "default" {
		t.Errorf("TUI.Theme = %q, want %q", cfg.TUI.Theme, "default")
	}
	if cfg.TUI.ColumnWidth != 16 {
		t.Errorf("TUI.ColumnWidth = %d, want 16", cfg.TUI.ColumnWidth)
	}

	// Verify default logging config
	if !cfg.Logging.Enabled {
		t.Error("Logging.Enabled should be true by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestGridConfig_Delays(t *testing.T) {
	tests := []struct {
		ms       int
		expected time.Duration
	}{
		{100, 100 * time.Millisecond},
		{500, 500 * time.Millisecond},
		{1000, 1 * time.Second},
		{0, 0},
	}

	for _, tt := range tests {
		cfg := GridConfig{FlashDelayMs: tt.ms, FadeDelayMs: tt.ms}
		if got := cfg.FlashDelay(); got != tt.expected {
			t.Errorf("FlashDelay() with %dms = %v, want %v", tt.ms, got, tt.expected)
		}
		if got := cfg.FadeDelay(); got != tt.expected {
			t.Errorf("FadeDelay() with %dms = %v, want %v", tt.ms, got, tt.expected)
		}
	}
}

func TestGridConfig_ApplyTo(t *testing.T) {
	called := false
	opts := grid.DefaultOptions()
	opts.CheckboxSelection = func(grid.CheckboxSelectionParams) bool { called = true; return true }

	cfg := GridConfig{
		SingleClickEdit:     true,
		RowSelection:        true,
		SuppressContextMenu: true,
		FlashDelayMs:        250,
		FadeDelayMs:         750,
	}
	cfg.ApplyTo(opts)

	if !opts.SingleClickEdit || !opts.RowSelection || !opts.SuppressContextMenu {
		t.Errorf("flags not applied: %+v", opts)
	}
	if opts.EnableCellChangeFlash {
		t.Error("EnableCellChangeFlash should stay false")
	}
	if opts.FlashDelay != 250*time.Millisecond || opts.FadeDelay != 750*time.Millisecond {
		t.Errorf("delays = %v, %v", opts.FlashDelay, opts.FadeDelay)
	}
	if opts.CheckboxSelection == nil {
		t.Fatal("ApplyTo should keep callbacks")
	}
	opts.CheckboxSelection(grid.CheckboxSelectionParams{})
	if !called {
		t.Error("kept callback not the original")
	}

	fresh := Default().Grid.Options()
	if fresh.FlashDelayOrDefault() != grid.DefaultFlashDelay {
		t.Errorf("Options() flash delay = %v", fresh.FlashDelayOrDefault())
	}
}

func TestLoggingConfig_ResolveDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{"absolute", "/var/log/cellgrid", "/var/log/cellgrid"},
		{"home", "~", home},
		{"under home", "~/logs", filepath.Join(home, "logs")},
		{"relative", "logs", "logs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoggingConfig{Dir: tt.dir}
			if got := cfg.ResolveDir(); got != tt.want {
				t.Errorf("ResolveDir() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("default", func(t *testing.T) {
		cfg := LoggingConfig{}
		if got := cfg.ResolveDir(); filepath.Base(got) != "cellgrid" {
			t.Errorf("ResolveDir() = %q, want a cellgrid directory", got)
		}
	})
}

func TestConfigDir(t *testing.T) {
	// Test with XDG_CONFIG_HOME set
	t.Run("with XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		result := ConfigDir()
		expected := "/custom/config/cellgrid"
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})

	// Test without XDG_CONFIG_HOME
	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		result := ConfigDir()

		// Should be based on home directory
		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".config", "cellgrid")
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})
}

func TestConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	result := ConfigFile()
	expected := "/custom/config/cellgrid/config.yaml"
	if result != expected {
		t.Errorf("ConfigFile() = %q, want %q", result, expected)
	}
}

func TestGet(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	// Set defaults in viper first (normally done by cmd init)
	SetDefaults()

	// Get() should return defaults when no config file exists
	cfg := Get()
	if cfg == nil {
		t.Fatal("Get() returned nil")
	}
	if cfg.TUI.Theme != "default" || cfg.Grid.FlashDelayMs != 500 {
		t.Errorf("Get() = %+v, want defaults", cfg)
	}
}

func TestLoad_FromFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "grid:\n  single_click_edit: true\n  flash_delay_ms: 200\ntui:\n  theme: nord\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig() error = %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Grid.SingleClickEdit || cfg.Grid.FlashDelayMs != 200 || cfg.TUI.Theme != "nord" {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.Grid.FadeDelayMs != 1000 {
		t.Errorf("unset keys should keep defaults, FadeDelayMs = %d", cfg.Grid.FadeDelayMs)
	}
}

func TestLoad_KeysAndClassStyles(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `tui:
  keys:
    quit: ctrl+x
  class_styles:
    cg-Negative:
      color: red
      font-weight: bold
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig() error = %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TUI.Keys["quit"] != "ctrl+x" {
		t.Errorf("Keys = %v", cfg.TUI.Keys)
	}
	// viper keys are case insensitive and come back lowercased
	props := cfg.TUI.ClassStyles["cg-negative"]
	if props["color"] != "red" || props["font-weight"] != "bold" {
		t.Errorf("ClassStyles = %v", cfg.TUI.ClassStyles)
	}
}

func TestLoad_Invalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set("tui.theme", "neon")

	_, err := Load()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) != 1 || verrs[0].Field != "tui.theme" {
		t.Errorf("Load() error = %v, want a tui.theme validation error", err)
	}
}

func TestHandleChange(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	var got []*Config
	var errs []error
	onChange := func(c *Config) { got = append(got, c) }
	onError := func(err error) { errs = append(errs, err) }

	viper.Set("grid.row_selection", true)
	handleChange(fsnotify.Event{Name: "config.yaml", Op: fsnotify.Write}, onChange, onError)
	if len(got) != 1 || !got[0].Grid.RowSelection {
		t.Fatalf("onChange calls = %d, want 1 with row selection", len(got))
	}

	handleChange(fsnotify.Event{Name: "config.yaml", Op: fsnotify.Chmod}, onChange, onError)
	if len(got) != 1 {
		t.Error("chmod should not reload")
	}

	viper.Set("logging.level", "loud")
	handleChange(fsnotify.Event{Name: "config.yaml", Op: fsnotify.Write}, onChange, onError)
	if len(got) != 1 || len(errs) != 1 {
		t.Errorf("invalid edit: changes = %d errors = %d, want 1 and 1", len(got), len(errs))
	}
}
