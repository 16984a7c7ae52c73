package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/fivhter/internal/auth"
	"github.com/desertthunder/fivhter/internal/backend"
	"github.com/desertthunder/fivhter/internal/formatter"
	"github.com/desertthunder/fivhter/internal/metrics"
	"github.com/desertthunder/fivhter/internal/repositories"
	"github.com/desertthunder/fivhter/internal/session"
	"github.com/desertthunder/fivhter/internal/shared"
	"github.com/desertthunder/fivhter/internal/store"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The database and everything built on it are opened lazily by [Runner.open], so commands
// that only touch configuration never create a database file.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	registry   *prometheus.Registry
	collector  *metrics.Collector

	db        *sql.DB
	slot      session.Slot
	snapshots *repositories.SnapshotRepository
	store     *store.Store
	auth      *auth.Service
	client    *backend.Client
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	Registry   *prometheus.Registry
	// Slot overrides the session storage selected by the config.
	Slot session.Slot
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		registry:   opts.Registry,
		collector:  metrics.NewCollector(opts.Registry),
		slot:       opts.Slot,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, listsCommand, voteCommand, commentCommand, profileCommand, metricsCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// app builds the root command.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "fivhter",
		Usage:   "Create, browse and vote on Top 5 lists",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Override the database path from the config",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print results in their { data, error } JSON shape",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		// item values carry free text, commas included
		DisableSliceFlagSeparator: true,
		Before:                    r.configure,
		After:                     r.close,
		Commands:                  r.register(),
	}
}

// configure loads the config file when present and applies the global flags.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if _, err := os.Stat(path); err == nil {
		config, err := shared.LoadConfig(path)
		if err != nil {
			return ctx, err
		}
		r.config = config
		r.configPath = path
	} else if cmd.IsSet("config") {
		return ctx, fmt.Errorf("%w: %s", shared.ErrMissingConfig, path)
	}

	if db := cmd.String("db"); db != "" {
		r.config.Database.Path = db
	}

	level, err := shared.ParseLogLevel(r.config.Log.Level)
	if err != nil {
		return ctx, err
	}
	if cmd.Bool("verbose") {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)

	return ctx, nil
}

// open builds the persistence, auth and backend layers once per process.
//
// The store is restored from the database snapshot. An empty database is seeded with the demo
// catalogue when database.seed is set.
func (r *Runner) open() error {
	if r.client != nil {
		return nil
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return err
	}
	r.db = db
	r.snapshots = repositories.NewSnapshotRepository(db)

	empty, err := r.snapshots.Empty()
	if err != nil {
		return fmt.Errorf("failed to inspect database: %w", err)
	}
	seed := empty && r.config.Database.Seed

	opts := []store.Option{store.WithLogger(shared.WithLogger(r.logger, "component", "store"))}
	if seed {
		r.logger.Info("seeding demo catalogue", "path", r.config.Database.Path)
		opts = append(opts, store.WithDemoData())
	} else {
		snap, err := r.snapshots.Load()
		if err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}
		opts = append(opts, store.WithSnapshot(snap))
	}
	r.store = store.New(opts...)

	slot, err := r.sessionSlot()
	if err != nil {
		return err
	}

	sessions := session.New(slot, shared.WithLogger(r.logger, "component", "session"))
	r.auth = auth.New(sessions, r.store,
		auth.WithLogger(shared.WithLogger(r.logger, "component", "auth")),
		auth.WithGoogle(r.config.Credentials.Google),
	)

	clientOpts := backend.OptionsFromConfig(r.config.Backend)
	clientOpts.Metrics = r.collector
	clientOpts.Logger = shared.WithLogger(r.logger, "component", "backend")
	r.client = backend.New(r.store, r.auth, clientOpts)

	if seed {
		return r.persist()
	}
	return nil
}

func (r *Runner) sessionSlot() (session.Slot, error) {
	if r.slot != nil {
		return r.slot, nil
	}

	switch r.config.Session.Storage {
	case "sqlite":
		return repositories.NewSlotRepository(r.db), nil
	case "file":
		return session.NewFileSlot(r.config.Session.Path), nil
	case "memory":
		return session.NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("%w: unknown session storage %q", shared.ErrInvalidConfig, r.config.Session.Storage)
	}
}

// persist writes the store back to the database.
func (r *Runner) persist() error {
	if err := r.snapshots.Save(r.store.Snapshot()); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (r *Runner) close(ctx context.Context, cmd *cli.Command) error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db, r.client = nil, nil
	return err
}

// resultError reports a failed [shared.Result] as a command error.
type resultError struct {
	info *shared.ErrorInfo
}

func (e *resultError) Error() string {
	return fmt.Sprintf("%s (%s)", e.info.Message, e.info.Code)
}

// render prints res as JSON when --json is set, otherwise through human.
// A failed result is returned as a *resultError either way.
func render[T any](r *Runner, cmd *cli.Command, res shared.Result[T], human func(T) error) error {
	if cmd.Bool("json") {
		data, err := formatter.ExportToJSON(res, cmd.Bool("pretty"))
		if err != nil {
			return err
		}
		if err := r.writeln(data); err != nil {
			return err
		}
	}

	data, ok := res.Unwrap()
	if !ok {
		return &resultError{info: res.Error}
	}
	if cmd.Bool("json") {
		return nil
	}
	return human(data)
}

// mutated persists the store after a successful write.
func mutated[T any](r *Runner, res shared.Result[T]) shared.Result[T] {
	if !res.Succeeded() {
		return res
	}
	if err := r.persist(); err != nil {
		r.logger.Error("changes were not saved", "error", err)
		return shared.Fail[T](err)
	}
	return res
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return r.writeln(output)
}

func (r *Runner) writeln(output []byte) error {
	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
