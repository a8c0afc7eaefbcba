// Package config provides CLI commands for managing cellgrid configuration.
package config

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	appconfig "github.com/Iron-Ham/cellgrid/internal/config"
	tuiconfig "github.com/Iron-Ham/cellgrid/internal/tui/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Wrapper functions for exec to allow testing
var execLookPath = exec.LookPath
var execCommand = exec.Command

// runInteractive is swapped out in tests.
var runInteractive = tuiconfig.Run

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify cellgrid configuration",
	Long: `View or modify cellgrid configuration.

Without arguments, opens an interactive configuration UI.
Use 'config show' to display configuration non-interactively.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigInteractive,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  cellgrid config set grid.single_click_edit true
  cellgrid config set tui.theme dracula
  cellgrid config set tui.column_width 20

Run 'cellgrid config show' to list every key.
Key bindings (tui.keys) and class styles (tui.class_styles) are edited
in the config file with 'cellgrid config edit'.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/cellgrid/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config file in your editor",
	Long: `Open the config file in your preferred editor.

Uses $EDITOR environment variable, or falls back to common editors (vim, nano, vi).
If no config file exists, creates one with default values first.`,
	RunE: runConfigEdit,
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Reset configuration to defaults",
	Long: `Reset configuration values to their defaults.

Without arguments, resets all configuration to defaults.
With a key argument, resets only that specific key.

Examples:
  cellgrid config reset                 # Reset all to defaults
  cellgrid config reset tui.theme       # Reset only tui.theme to default`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigReset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configResetCmd)
}

// Register adds all config-related commands to the given parent command.
// This is the main entry point for integrating the config subpackage with
// the root command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

func runConfigInteractive(cmd *cobra.Command, args []string) error {
	return runInteractive()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg := appconfig.Get()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	section := ""
	for _, s := range appconfig.Settings() {
		prefix, name, _ := strings.Cut(s.Key, ".")
		if prefix != section {
			fmt.Fprintf(out, "%s:\n", prefix)
			section = prefix
		}
		fmt.Fprintf(out, "  %s: %v\n", name, viper.Get(s.Key))
		if s.Key == "tui.double_click_ms" {
			printMap(out, "keys", cfg.TUI.Keys)
			printClassStyles(out, cfg.TUI.ClassStyles)
		}
	}

	return nil
}

func printMap(out io.Writer, name string, m map[string]string) {
	if len(m) == 0 {
		return
	}
	fmt.Fprintf(out, "  %s:\n", name)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "    %s: %s\n", k, m[k])
	}
}

func printClassStyles(out io.Writer, styles map[string]map[string]string) {
	if len(styles) == 0 {
		return
	}
	fmt.Fprintln(out, "  class_styles:")
	classes := make([]string, 0, len(styles))
	for c := range styles {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	for _, c := range classes {
		props := make([]string, 0, len(styles[c]))
		for p, v := range styles[c] {
			props = append(props, p+": "+v)
		}
		sort.Strings(props)
		fmt.Fprintf(out, "    %s: {%s}\n", c, strings.Join(props, ", "))
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	setting, ok := appconfig.LookupSetting(key)
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'cellgrid config show' to see valid keys", key)
	}

	typedValue, err := setting.Parse(value)
	if err != nil {
		return err
	}

	viper.Set(key, typedValue)

	configFile, err := writeConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)

	return nil
}

// writeConfig writes viper's settings to the user's config file.
func writeConfig() (string, error) {
	// Ensure config directory exists
	configDir := appconfig.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := appconfig.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configFile, nil
}

const defaultConfigContent = `# cellgrid configuration

# Grid behavior
grid:
  # Start editing on a single click instead of a double click
  single_click_edit: false
  # Stop cells from taking focus
  suppress_cell_selection: false
  # Let the space bar toggle the selection of the focused row
  row_selection: false
  # Flash every cell whose value changes
  enable_cell_change_flash: false
  # Show group aggregates in a footer row instead of the group row
  group_include_footer: false
  # Keep group row values when footers are shown
  group_suppress_blank_header: false
  # Disable the right-click cell menu
  suppress_context_menu: false
  # Flash animation timings in milliseconds
  flash_delay_ms: 500
  fade_delay_ms: 1000

# TUI (terminal user interface) settings
tui:
  # Options: default, monokai, dracula, nord
  theme: default
  # Width of columns that do not set their own
  column_width: 16
  # Longest gap between the clicks of a double click
  double_click_ms: 400
  # Rebind host commands, e.g.
  # keys:
  #   quit: ctrl+x
  #   refresh_cells: f5
  keys: {}
  # Style cells carrying a class. Supported properties: color, background,
  # background-color, font-weight, font-style, text-decoration, text-align
  # class_styles:
  #   cg-negative:
  #     color: red
  class_styles: {}

# Cell templates referenced by URL
templates:
  # Directory relative template paths resolve against (empty = working directory)
  base_dir: ""
  # Timeout for templates fetched over http(s)
  http_timeout_ms: 5000

# Debug logging
logging:
  enabled: true
  # Options: debug, info, warn, error
  level: info
  # Empty means the cellgrid directory under the user cache dir
  dir: ""
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := appconfig.ConfigDir()
	configFile := appconfig.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'cellgrid config set' to modify values", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize cellgrid's behavior.")

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configFile := appconfig.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(appconfig.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: CELLGRID_* (e.g., CELLGRID_TUI_THEME)")

	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	// Check if config file exists, if not create it
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file doesn't exist, creating with defaults...\n")
		if err := runConfigInit(cmd, args); err != nil {
			return err
		}
	}

	// Find an editor
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		// Try common editors
		for _, e := range []string{"vim", "nano", "vi"} {
			if _, err := execLookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set $EDITOR environment variable")
	}

	// Open the editor
	editorCmd := execCommand(editor, configFile)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config file saved: %s\n", configFile)
	return nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		// Reset all values
		for _, s := range appconfig.Settings() {
			viper.Set(s.Key, s.Default)
		}
		viper.Set("tui.keys", map[string]string{})
		viper.Set("tui.class_styles", map[string]map[string]string{})
		fmt.Fprintln(out, "Reset all configuration to defaults.")
	} else {
		// Reset specific key
		key := args[0]
		setting, ok := appconfig.LookupSetting(key)
		if !ok {
			return fmt.Errorf("unknown configuration key: %s\nRun 'cellgrid config show' to see valid keys", key)
		}
		viper.Set(key, setting.Default)
		fmt.Fprintf(out, "Reset %s to default: %v\n", key, setting.Default)
	}

	configFile, err := writeConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}
