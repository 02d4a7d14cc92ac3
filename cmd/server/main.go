package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"smart-route-optimizer/internal/adapters/repositories"
	"smart-route-optimizer/internal/adapters/traffic"
	"smart-route-optimizer/internal/api"
	"smart-route-optimizer/internal/config"
	"smart-route-optimizer/internal/platform/logging"
	"smart-route-optimizer/internal/services"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (traffic provider, history store) behind ports and starts the HTTP server.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled or the listener fails.
// It returns instead of exiting so deferred closes and log flushes always run.
func run(ctx context.Context) error {
	dotenv := config.LoadDotenv()

	cfg, err := config.Load("data/app.db")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logging.New(cfg.AppEnv, "route-optimizer")
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if !dotenv {
		log.Info("no .env file found (using environment variables)")
	}

	provider, err := traffic.NewProvider(traffic.Config{
		APIKey:  cfg.RouteAPIKey,
		BaseURL: cfg.RouteAPIURL,
		Timeout: cfg.RouteAPITimeout,
	}, log)
	if err != nil {
		log.Error("failed to create traffic provider", zap.Error(err))
		return fmt.Errorf("failed to create traffic provider: %w", err)
	}

	history, closeHistory, err := repositories.OpenHistory(ctx, cfg.DBPath, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to open history store", zap.Error(err))
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer func() {
		if err := closeHistory(); err != nil {
			log.Warn("failed to close history store", zap.Error(err))
		}
	}()

	pipeline := services.NewPipeline(provider, history, log)
	router := api.NewRouter(pipeline, history, log)

	// Write timeout leaves room for a slow provider on top of its own client timeout.
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.RouteAPITimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", zap.Error(err))
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
