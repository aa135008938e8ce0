package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/redact"
)

// pingTimeout bounds a single connection attempt.
const pingTimeout = 5 * time.Second

type pinger interface {
	PingContext(ctx context.Context) error
}

// openDatabase opens the connection pool and blocks until the database
// accepts connections or the retry budget is spent.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := waitForDatabase(ctx, db, cfg.ConnectRetries, cfg.ConnectRetryInterval, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info("database connection established",
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns))
	return db, nil
}

// waitForDatabase pings db up to attempts times, sleeping interval between
// failures. It stops early when ctx is done.
func waitForDatabase(
	ctx context.Context,
	db pinger,
	attempts int,
	interval time.Duration,
	log *slog.Logger,
) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()
		if lastErr == nil {
			return nil
		}

		log.Warn("database not ready",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", attempts),
			slog.String("error", redact.Error(lastErr)))

		if attempt == attempts {
			break
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("waiting for database: %w", ctx.Err())
		case <-timer.C:
		}
	}

	return fmt.Errorf("database not reachable after %d attempts: %w", attempts, lastErr)
}
