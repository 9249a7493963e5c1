package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/finbook/finbook-api/internal/config"
	"github.com/finbook/finbook-api/internal/platform/postgres"
	"github.com/finbook/finbook-api/internal/service"
	"github.com/finbook/finbook-api/internal/store"
)

// application bundles the long-lived dependencies of the server:
// configuration, logging, the database handle and the wired services.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userService service.UserService
	cardService service.CardService
}

// newApplication opens the database, optionally applies migrations and wires
// the stores and services together.
func newApplication(cfg *config.Config, appLogger *slog.Logger) (*application, error) {
	db, err := openDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := runMigrations(db, appLogger); err != nil {
			closeDatabase(db, appLogger)
			return nil, fmt.Errorf("applying migrations: %w", err)
		}
	}

	userStore := postgres.NewPostgresUserStore(db, appLogger)
	cardStore := postgres.NewPostgresCreditCardStore(db, appLogger)
	historyStore := postgres.NewPostgresBalanceHistoryStore(db, appLogger)
	runner := store.NewSQLRunner(db)

	userService, err := service.NewUserService(runner, userStore, cardStore, historyStore, appLogger)
	if err != nil {
		closeDatabase(db, appLogger)
		return nil, fmt.Errorf("creating user service: %w", err)
	}

	cardService, err := service.NewCardService(runner, userStore, cardStore, historyStore, appLogger)
	if err != nil {
		closeDatabase(db, appLogger)
		return nil, fmt.Errorf("creating card service: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      appLogger,
		db:          db,
		userService: userService,
		cardService: cardService,
	}, nil
}

// openDatabase opens the connection pool and verifies connectivity.
func openDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("pinging database: %w (close failed: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func closeDatabase(db *sql.DB, log *slog.Logger) {
	if err := db.Close(); err != nil {
		log.Error("Failed to close database", "error", err)
	}
}

// cleanup releases the application's long-lived resources.
func (app *application) cleanup() {
	closeDatabase(app.db, app.logger)
}
