package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/paycycle/internal/app"
	"github.com/MrJamesThe3rd/paycycle/internal/config"
	"github.com/MrJamesThe3rd/paycycle/internal/export"
	paycycleHttp "github.com/MrJamesThe3rd/paycycle/internal/http"
	exportHandler "github.com/MrJamesThe3rd/paycycle/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/paycycle/internal/http/importcsv"
	txHandler "github.com/MrJamesThe3rd/paycycle/internal/http/transaction"
	"github.com/MrJamesThe3rd/paycycle/internal/importer"
	"github.com/MrJamesThe3rd/paycycle/internal/transaction"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	var (
		importService = importer.NewService(a.Store)
		exportService = export.NewService(a.Store)
	)

	router := paycycleHttp.New(
		cfg.Server.AllowedOrigins,
		txHandler.NewHandler(a.Store),
		importHandler.NewHandler(importService),
		exportHandler.NewHandler(exportService),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}

		if err := a.Store.Persist(shutdownCtx); err != nil {
			return fmt.Errorf("final flush: %w", err)
		}

		slog.Info("store flushed")

		return nil
	})

	if cfg.Storage.FlushInterval > 0 {
		g.Go(func() error {
			flushLoop(gctx, a.Store, cfg.Storage.FlushInterval)
			return nil
		})
	}

	return g.Wait()
}

// flushLoop persists the store every interval until ctx is done. Failures are
// logged and retried on the next tick.
func flushLoop(ctx context.Context, store *transaction.Store, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := store.Persist(ctx); err != nil {
				slog.Error("periodic flush failed", "error", err)
				continue
			}

			slog.Debug("store flushed")
		}
	}
}
