package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/civicair/enviro-api/internal/aqi"
	"github.com/civicair/enviro-api/internal/config"
	"github.com/civicair/enviro-api/internal/database"
	"github.com/civicair/enviro-api/internal/detect"
	"github.com/civicair/enviro-api/internal/migrations"
	"github.com/civicair/enviro-api/internal/observability"
	"github.com/civicair/enviro-api/internal/report"
	"github.com/civicair/enviro-api/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	metrics := observability.NewMetrics()

	// --- Report store ---
	deps := server.Deps{
		Simulator: aqi.NewSimulator(),
		Detector:  detect.NewDetector(),
		Metrics:   metrics,
	}

	var store report.Store
	if cfg.DBPath != "" {
		db, err := database.Open(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("connecting to sqlite: %w", err)
		}
		defer db.Close()

		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		logger.Info("using sqlite report store", "path", cfg.DBPath)

		store = report.NewSQLiteStore(db)
		deps.DB = db
	} else {
		logger.Info("using in-memory report store")
		store = report.NewMemoryStore()
	}

	deps.Reports = report.NewProcessor(store, report.WithMetrics(metrics))

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, deps)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
