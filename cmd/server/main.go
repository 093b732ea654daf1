package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/pokedex/internal/adapter/httpserver"
	"github.com/pscheid92/pokedex/internal/adapter/memory"
	"github.com/pscheid92/pokedex/internal/adapter/metrics"
	"github.com/pscheid92/pokedex/internal/app"
	"github.com/pscheid92/pokedex/internal/domain"
	"github.com/pscheid92/pokedex/internal/platform/config"
	"github.com/pscheid92/pokedex/internal/platform/logging"
	"github.com/pscheid92/pokedex/internal/platform/version"
)

func runGracefulShutdown(srv *httpserver.Server, cfg *config.Config) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, draining requests...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupRecords(cfg *config.Config) *memory.RecordStore {
	if !cfg.SeedRecords {
		return memory.NewRecordStore()
	}
	seed := domain.SeedRecords()
	slog.Info("Seeding record collection", "count", len(seed))
	return memory.NewRecordStore(seed...)
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "version", version.Get().String())

	records := setupRecords(cfg)
	appSvc := app.NewService(records)
	sessionStore := memory.NewSessionStore(clock, httpserver.SessionOptions(cfg))

	reg := metrics.NewRegistry()
	metrics.RegisterStoreGauges(reg,
		func() float64 { return float64(sessionStore.Len()) },
		func() float64 {
			n, err := appSvc.CountRecords(context.Background())
			if err != nil {
				return 0
			}
			return float64(n)
		},
	)

	healthChecks := []httpserver.HealthCheck{
		{
			Name: "record_store",
			Check: func(ctx context.Context) error {
				_, err := appSvc.CountRecords(ctx)
				return err
			},
		},
	}

	srv, err := httpserver.NewServer(cfg, appSvc, sessionStore, reg, clock, healthChecks)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	done := runGracefulShutdown(srv, cfg)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("Server stopped")
}
