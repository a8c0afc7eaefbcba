package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Iron-Ham/cellgrid/internal/tui/styles"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Inspect color themes",
	Long: `Inspect the color themes of the cellgrid TUI.

Use 'theme list' to see all available themes.
Use 'theme export' to print a theme's colors as YAML.
Use 'theme info' to view details about a specific theme.`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available themes",
	RunE:  runThemeList,
}

var themeExportCmd = &cobra.Command{
	Use:   "export <theme-name> [output-file]",
	Short: "Export a theme to YAML",
	Long: `Export a theme to YAML format.

If no output file is specified, the YAML is printed to stdout.

Examples:
  cellgrid config theme export default                # Print default theme to stdout
  cellgrid config theme export dracula dracula.yaml   # Save dracula theme to file`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runThemeExport,
}

var themeInfoCmd = &cobra.Command{
	Use:   "info <theme-name>",
	Short: "Show information about a theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeInfo,
}

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeExportCmd)
	themeCmd.AddCommand(themeInfoCmd)
	configCmd.AddCommand(themeCmd)
}

func unknownTheme(name string) error {
	return fmt.Errorf("unknown theme: %s\n\nValid options: %s", name, strings.Join(styles.BuiltinThemes(), ", "))
}

func runThemeList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Available themes:")
	for _, name := range styles.BuiltinThemes() {
		fmt.Fprintf(out, "  - %s\n", name)
	}
	return nil
}

func runThemeExport(cmd *cobra.Command, args []string) error {
	themeName := args[0]
	if !styles.IsValidTheme(themeName) {
		return unknownTheme(themeName)
	}

	data, err := styles.ExportTheme(styles.ThemeName(themeName))
	if err != nil {
		return fmt.Errorf("exporting theme: %w", err)
	}

	// If output file specified, write to file
	if len(args) > 1 {
		outputPath := args[1]
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("writing to %s: %w", outputPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme exported to: %s\n", outputPath)
		return nil
	}

	// Otherwise print to stdout
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runThemeInfo(cmd *cobra.Command, args []string) error {
	themeName := args[0]
	if !styles.IsValidTheme(themeName) {
		return unknownTheme(themeName)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Theme: %s\n", themeName)

	palette := styles.GetPalette(styles.ThemeName(themeName))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Base Colors:")
	fmt.Fprintf(out, "  Primary:   %s\n", palette.Primary)
	fmt.Fprintf(out, "  Secondary: %s\n", palette.Secondary)
	fmt.Fprintf(out, "  Warning:   %s\n", palette.Warning)
	fmt.Fprintf(out, "  Error:     %s\n", palette.Error)
	fmt.Fprintf(out, "  Muted:     %s\n", palette.Muted)
	fmt.Fprintf(out, "  Surface:   %s\n", palette.Surface)
	fmt.Fprintf(out, "  Text:      %s\n", palette.Text)
	fmt.Fprintf(out, "  Border:    %s\n", palette.Border)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Cell Backgrounds:")
	fmt.Fprintf(out, "  Focus:     %s\n", palette.FocusBg)
	fmt.Fprintf(out, "  Range:     %s\n", palette.RangeBg)
	fmt.Fprintf(out, "  Editing:   %s\n", palette.EditingBg)
	fmt.Fprintf(out, "  Flash:     %s\n", palette.FlashBg)

	return nil
}
