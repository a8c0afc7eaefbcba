package cmd

import (
	"strings"

	"github.com/Iron-Ham/cellgrid/internal/cmd/config"
	"github.com/Iron-Ham/cellgrid/internal/cmd/view"
	appconfig "github.com/Iron-Ham/cellgrid/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "cellgrid",
	Short: "Interactive data grid for the terminal",
	Long: `cellgrid shows rows from a YAML or JSON file in an interactive grid.

Cells can be focused with the keyboard or mouse, edited in place,
selected in ranges, copied and flashed.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/cellgrid/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	view.Register(rootCmd)
	config.Register(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	appconfig.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(appconfig.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CELLGRID")
	// Replace dots with underscores for nested keys in env vars
	// e.g., CELLGRID_TUI_THEME for tui.theme
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
