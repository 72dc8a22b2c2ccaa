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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"sheetsight/internal/config"
	"sheetsight/internal/dataset"
	"sheetsight/internal/logging"
	"sheetsight/internal/web"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := newPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	service, err := dataset.NewService(ctx, pool, dataset.Options{
		MultiTenant:          cfg.Tenancy.MultiTenant,
		MaxConcurrentIngests: cfg.Ingest.MaxConcurrent,
		IngestWait:           cfg.Ingest.MaxWaitTime,
	})
	if err != nil {
		return fmt.Errorf("init dataset service: %w", err)
	}
	dataset.IngestTimeout = cfg.Ingest.Timeout

	slog.Info("catalog loaded", "datasets", len(service.ListDatasets()))

	server := web.NewServer(cfg, service)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Audit.RetentionEnabled {
		g.Go(func() error {
			service.RunAuditRetention(gctx, dataset.RetentionConfig{
				KeepFor:       cfg.Audit.Retention,
				CheckInterval: cfg.Audit.PurgeInterval,
			})
			return nil
		})
	}

	g.Go(func() error {
		if err := server.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Let in-flight ingests finish before closing listeners.
		if err := service.Limiter().WaitForDrain(shutdownCtx); err != nil {
			slog.Warn("ingest drain incomplete", "error", err)
		}
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newPool builds the pgx connection pool from configuration and verifies
// connectivity before the server starts.
func newPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.Database.MaxConns)
	poolCfg.MinConns = int32(cfg.Database.MinConns)
	poolCfg.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
