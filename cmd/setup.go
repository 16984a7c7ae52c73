package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/fivhter/internal/shared"
	"github.com/desertthunder/fivhter/internal/ui"
)

// setupCommand handles setup operations for the database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database, run migrations and seed the demo catalogue",
				Action: r.SetupDatabase,
			},
			{
				Name:   "migrations",
				Usage:  "Show applied and pending schema migrations",
				Action: r.SetupMigrations,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent schema migration",
				Action: r.SetupRollback,
			},
			{
				Name:  "config",
				Usage: "Write a config file from the embedded example",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Where to write the config file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// SetupDatabase initializes the database and runs migrations.
//
// Opening the backend migrates the schema and, when database.seed is set, seeds an empty database.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("initializing database", "path", r.config.Database.Path)

	if err := r.open(); err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return r.writePlain("%s %d lists in %s\n", ui.Styles.OK("✓"), r.store.Len(), r.config.Database.Path)
}

// SetupMigrations prints the state of every embedded migration without applying any.
func (r *Runner) SetupMigrations(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	statuses, err := shared.Migrations(db)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(statuses, cmd.Bool("pretty"))
	}
	for _, m := range statuses {
		mark := ui.Styles.Help("· pending")
		if m.Applied {
			mark = ui.Styles.OK("✓ applied")
		}
		if err := r.writePlain("%04d %-20s %s\n", m.Version, m.Name, mark); err != nil {
			return err
		}
	}
	return nil
}

// SetupRollback reverts the latest applied migration.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RollbackMigration(db); err != nil {
		return err
	}

	r.logger.Warn("rolled back migration", "path", r.config.Database.Path)
	return r.writePlain("%s rolled back the latest migration\n", ui.Styles.OK("✓"))
}

// SetupConfig writes config.toml from the embedded template.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("output")

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	return r.writePlain("%s config written to %s\n", ui.Styles.OK("✓"), path)
}
