package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/zaalplan/internal/config"
	"github.com/javiermolinar/zaalplan/internal/logging"
	"github.com/javiermolinar/zaalplan/internal/metrics"
	"github.com/javiermolinar/zaalplan/internal/planner"
	"github.com/javiermolinar/zaalplan/internal/screening"
	"github.com/javiermolinar/zaalplan/internal/store"
	"github.com/javiermolinar/zaalplan/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// DebugLogPath is where --debug logs while the grid owns the terminal.
const DebugLogPath = "zaalplan-debug.log"

// runMode selects where logs go.
type runMode int

const (
	modeCommand     runMode = iota // one-shot commands: warnings and errors on stderr
	modeInteractive                // the grid: log file or nothing
	modeServer                     // serve: configured level on stderr
)

// App holds the CLI application state.
type App struct {
	repo     screening.Repository
	config   *config.Config
	root     *cobra.Command
	debug    bool // Enable debug logging
	now      func() time.Time
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	log     *logrus.Logger
	planner *planner.Planner
	closers []io.Closer
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened from the storage configuration on first use
// and closed by Close.
func NewApp(repo screening.Repository, cfg *config.Config) *App {
	registry := prometheus.NewRegistry()
	a := &App{
		repo:     repo,
		config:   cfg,
		now:      time.Now,
		registry: registry,
		metrics:  metrics.MustNewMetrics(registry),
	}

	a.root = &cobra.Command{
		Use:   "zaalplan",
		Short: "Plan a week of screenings across cinema halls",
		Long: `Zaalplan keeps the weekly programme of a multi-hall cinema.

Screenings are laid out on a grid of halls and days in 15-minute slots.
Run without arguments to open the interactive grid.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.ensurePlanner(cmd.Context(), modeInteractive)
			if err != nil {
				return err
			}
			return tui.Run(p, tui.Options{Theme: a.config.UI.Theme, Now: a.now})
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (to "+DebugLogPath+" inside the grid)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.freeCmd())
	a.root.AddCommand(a.summaryCmd())
	a.root.AddCommand(a.catalogCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.serveCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "zaalplan %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository and log file opened by the app.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// logger builds the app logger on first use.
func (a *App) logger(mode runMode) (*logrus.Logger, error) {
	if a.log != nil {
		return a.log, nil
	}

	level := a.config.Log.Level
	if a.debug {
		level = "debug"
	} else if mode == modeCommand {
		level = "warn"
	}

	path := a.config.Log.File
	if path == "" && mode == modeInteractive && a.debug {
		path = DebugLogPath
	}

	switch {
	case path != "":
		log, closer, err := logging.NewFile(level, path)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		a.closers = append(a.closers, closer)
		a.log = log
	case mode == modeInteractive:
		a.log = logging.Discard()
	default:
		a.log = logging.NewWithOutput(level, a.root.ErrOrStderr())
	}
	return a.log, nil
}

// ensurePlanner opens storage and loads the schedule on first use.
func (a *App) ensurePlanner(ctx context.Context, mode runMode) (*planner.Planner, error) {
	if a.planner != nil {
		return a.planner, nil
	}

	log, err := a.logger(mode)
	if err != nil {
		return nil, err
	}

	repo := a.repo
	if repo == nil {
		opened, err := store.Open(a.config.Storage, log, a.metrics)
		if err != nil {
			return nil, fmt.Errorf("opening storage: %w", err)
		}
		a.repo = opened.Repo
		a.closers = append(a.closers, opened.Repo)
		repo = opened.Repo
	} else {
		repo = store.Instrument(repo, a.metrics)
	}

	p, err := planner.New(planner.Options{
		Repo:      repo,
		Halls:     a.config.Schedule.Halls,
		StartHour: a.config.Schedule.StartHour,
		EndHour:   a.config.Schedule.EndHour,
		Catalog:   a.config.Catalog,
		Log:       log,
		Metrics:   a.metrics,
		Now:       a.now,
	})
	if err != nil {
		return nil, err
	}
	if err := p.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading schedule: %w", err)
	}

	a.planner = p
	return p, nil
}

