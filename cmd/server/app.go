package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/metrics"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	db      *sql.DB
	metrics *metrics.Registry
	version string

	// Stores
	userStore store.UserStore
	taskStore store.TaskStore

	// Services
	jwtService    auth.JWTService
	tokenVerifier *auth.TokenVerifier
	userService   service.UserService
	taskService   service.TaskService
}

// newApplication wires the PostgreSQL stores and every service on top of db.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	return newApplicationWithStores(
		cfg,
		logger,
		db,
		postgres.NewPostgresUserStore(db, logger),
		postgres.NewPostgresTaskStore(db, logger),
	)
}

// newApplicationWithStores wires the services on top of the given stores.
// db is still used for transactions and health checks.
func newApplicationWithStores(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	users store.UserStore,
	tasks store.TaskStore,
) (*application, error) {
	app := &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		metrics:   metrics.NewRegistry(),
		version:   version,
		userStore: users,
		taskStore: tasks,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	hasher, err := auth.NewPasswordHasher(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	app.userService, err = service.NewUserService(users, hasher, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.taskService, err = service.NewTaskService(tasks, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.tokenVerifier = auth.NewTokenVerifier(app.jwtService, users)

	logger.Info("application initialized successfully")
	return app, nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.Any("error", err))
		}
	}

	app.logger.Info("application shutdown completed")
}
