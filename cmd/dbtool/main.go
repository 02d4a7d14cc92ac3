package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"smart-route-optimizer/internal/adapters/repositories"
	"smart-route-optimizer/internal/config"
	"smart-route-optimizer/internal/platform/db"
	"smart-route-optimizer/internal/platform/logging"
	"strings"
	"time"

	"go.uber.org/zap"
)

var errMissingDatabaseURL = errors.New("DATABASE_URL is required")

// main initializes the postgres history schema pointed to by DATABASE_URL.
func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "dbtool: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	config.LoadDotenv()

	log, err := logging.New(config.Get("APP_ENV", "development"), "dbtool")
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		return errMissingDatabaseURL
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	conn, err := db.OpenPostgres(ctx, databaseURL)
	if err != nil {
		log.Error("failed to open database", zap.Error(err))
		return err
	}
	defer conn.Close()

	log.Info("initializing database schema")
	if err := repositories.InitPostgresSchema(ctx, conn); err != nil {
		log.Error("schema initialization failed", zap.Error(err))
		return err
	}
	log.Info("schema ready")
	return nil
}
