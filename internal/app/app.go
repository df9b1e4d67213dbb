// Package app assembles the transaction store from configuration for the
// paycycle binaries.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/paycycle/internal/config"
	"github.com/MrJamesThe3rd/paycycle/internal/database"
	"github.com/MrJamesThe3rd/paycycle/internal/report"
	"github.com/MrJamesThe3rd/paycycle/internal/transaction"
	txStore "github.com/MrJamesThe3rd/paycycle/internal/transaction/store"
)

type App struct {
	Store *transaction.Store

	db *sql.DB
}

// New builds the configured persister, opens the store and returns it ready
// for use. Close releases the database connection, if any.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	persister, err := a.persister(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var opts []report.Option
	if cfg.Report.IncludeOpenPeriod {
		opts = append(opts, report.WithOpenPeriod())
	}

	a.Store = transaction.NewStore(persister, report.New(opts...))

	if err := a.Store.Open(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("opening store: %w", err)
	}

	slog.Info("store opened", "backend", cfg.Storage.Backend, "users", len(a.Store.Index()))

	return a, nil
}

func (a *App) persister(ctx context.Context, cfg *config.Config) (transaction.Persister, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		db, err := database.New(ctx, cfg.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}

		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrating database: %w", err)
		}

		a.db = db

		return txStore.NewPostgres(db), nil
	case config.BackendFile:
		return txStore.NewFile(cfg.Storage.File), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}

	return a.db.Close()
}
