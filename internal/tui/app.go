package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/cellgrid/internal/cell/editor"
	"github.com/Iron-Ham/cellgrid/internal/cell/render"
	"github.com/Iron-Ham/cellgrid/internal/config"
	"github.com/Iron-Ham/cellgrid/internal/dataset"
	"github.com/Iron-Ham/cellgrid/internal/expression"
	"github.com/Iron-Ham/cellgrid/internal/logging"
	"github.com/Iron-Ham/cellgrid/internal/template"
	"github.com/Iron-Ham/cellgrid/internal/tui/styles"
)

// Options configure the terminal application.
type Options struct {
	// Config defaults to config.Default().
	Config *config.Config
	Logger *logging.Logger
	// Context is handed to cell callbacks.
	Context any
	// WatchConfig reloads the configuration when its file changes.
	WatchConfig bool
}

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	relay   *relay
	watch   bool

	view      *GridView
	sched     *Scheduler
	templates *template.Service
	exprs     *expression.Evaluator
}

// New creates the application showing ds.
func New(ds *dataset.Dataset, opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	styles.SetActiveTheme(styles.ThemeName(cfg.TUI.Theme))

	a := &App{relay: &relay{}, watch: opts.WatchConfig}
	a.sched = NewScheduler(a.relay.Send)
	a.templates = template.New(
		template.WithBaseDir(cfg.Templates.BaseDir),
		template.WithTimeout(cfg.Templates.HTTPTimeout()),
		template.WithPost(a.sched.Post),
		template.WithLogger(logger.WithComponent("template")),
	)
	a.exprs = expression.New()

	painter := NewPainter()
	a.view = NewGridView(ds, ViewOptions{
		Options:     cfg.Grid.Options(),
		ColumnWidth: cfg.TUI.ColumnWidth,
		Context:     opts.Context,
		Renderers:   render.NewDefaultRegistry(),
		Editors:     editor.NewDefaultRegistry(),
		Templates:   a.templates,
		Expressions: a.exprs,
		Scheduler:   a.sched,
		Locator:     painter,
		Viewport:    func() (int, int) { return a.view.Viewport() },
		Logger:      logger,
	})
	a.model = NewModel(a.view, painter, a.sched, cfg, logger)
	return a
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	defer a.close()

	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	a.relay.Attach(a.program)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		<-sigChan
		if a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	if a.watch {
		config.Watch(
			func(cfg *config.Config) { a.relay.Send(configChangedMsg{cfg: cfg}) },
			func(err error) { a.relay.Send(configErrorMsg{err: err}) },
		)
	}

	_, err := a.program.Run()

	// Clean up signal handler
	signal.Stop(sigChan)

	return err
}

// close stops timers, drops messages still in flight and destroys the cells.
func (a *App) close() {
	a.relay.Close()
	a.sched.Stop()
	a.view.Close()
	a.templates.Close()
	a.exprs.Close()
}
