package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/urfave/cli/v2"
)

const skipMigrationsFlag = "skip-migrations"

// newCLI creates the command-line application. Running it without a
// command starts the server.
func newCLI() *cli.App {
	return &cli.App{
		Name:           "tasks-api",
		Usage:          "Task management REST API",
		Version:        version,
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    skipMigrationsFlag,
				Usage:   "Do not apply pending migrations on startup",
				EnvVars: []string{"TASKS_SKIP_MIGRATIONS"},
			},
		},
		Action: func(c *cli.Context) error {
			return runServe(c.Context, c.Bool(skipMigrationsFlag))
		},
	}
}

func migrateCommand() *cli.Command {
	sub := func(name, usage string) *cli.Command {
		return &cli.Command{
			Name:  name,
			Usage: usage,
			Action: func(c *cli.Context) error {
				return runMigrate(c.Context, name)
			},
		}
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage database schema migrations",
		Subcommands: []*cli.Command{
			sub(postgres.MigrateUp, "Apply all pending migrations"),
			sub(postgres.MigrateDown, "Roll back the most recent migration"),
			sub(postgres.MigrateStatus, "Show the status of every migration"),
			sub(postgres.MigrateVersion, "Print the current schema version"),
			sub(postgres.MigrateReset, "Roll back every migration"),
		},
	}
}

// bootstrap loads configuration and sets up the process-wide logger.
func bootstrap() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("password_hasher", cfg.Auth.PasswordHasher),
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	return cfg, log, nil
}

func runServe(ctx context.Context, skipMigrations bool) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	if skipMigrations {
		log.Info("skipping database migrations")
	} else if err := postgres.Migrate(ctx, db, postgres.MigrateUp, log); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

func runMigrate(ctx context.Context, command string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database connection", slog.Any("error", err))
		}
	}()

	return postgres.Migrate(ctx, db, command, log)
}
