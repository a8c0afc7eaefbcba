// Package view provides the command that opens a dataset in the grid.
package view

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/cellgrid/internal/config"
	"github.com/Iron-Ham/cellgrid/internal/dataset"
	"github.com/Iron-Ham/cellgrid/internal/errors"
	"github.com/Iron-Ham/cellgrid/internal/logging"
	"github.com/Iron-Ham/cellgrid/internal/tui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var viewCmd = &cobra.Command{
	Use:   "view <rows-file>",
	Short: "Open a rows file in the grid",
	Long: `Open a YAML or JSON rows file in the interactive grid.

Columns are read from --columns when given and inferred from the first
row otherwise. The configuration file is watched while the grid runs, so
theme, key binding and class style changes apply without a restart.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

var (
	columnsFile string
	noWatch     bool
)

// Swapped out in tests.
var (
	fs     = afero.NewOsFs()
	runApp = func(ds *dataset.Dataset, opts tui.Options) error {
		return tui.New(ds, opts).Run()
	}
)

func init() {
	viewCmd.Flags().StringVarP(&columnsFile, "columns", "C", "", "YAML file of column definitions")
	viewCmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the config file when it changes")
}

// Register adds the view command to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ds, err := dataset.NewLoader(fs).Load(args[0], columnsFile)
	if err != nil {
		if errors.IsUserFacing(err) {
			return fmt.Errorf("invalid dataset %s: %w", args[0], err)
		}
		return err
	}

	logger := CreateLogger(cfg)
	defer func() { _ = logger.Close() }()
	logger.Info("opening dataset",
		"rows", args[0],
		"columns", columnsFile,
		"row_count", ds.RowCount(),
		"column_count", len(ds.Columns),
	)

	return runApp(ds, tui.Options{
		Config:      cfg,
		Logger:      logger,
		WatchConfig: !noWatch && viper.ConfigFileUsed() != "",
	})
}

// CreateLogger creates a logger if logging is enabled in config.
// Returns a NopLogger if logging is disabled or if creation fails.
func CreateLogger(cfg *config.Config) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.NopLogger()
	}

	logger, err := logging.NewLogger(cfg.Logging.ResolveDir(), cfg.Logging.Level)
	if err != nil {
		// Log creation failure shouldn't prevent the application from starting
		fmt.Fprintf(os.Stderr, "Warning: failed to create logger: %v\n", err)
		return logging.NopLogger()
	}

	return logger
}
