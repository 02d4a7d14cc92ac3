package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"smart-route-optimizer/internal/adapters/repositories"
	"smart-route-optimizer/internal/adapters/traffic"
	"smart-route-optimizer/internal/config"
	"smart-route-optimizer/internal/domain"
	"smart-route-optimizer/internal/platform/logging"
	"smart-route-optimizer/internal/services"
	"strconv"

	"go.uber.org/zap"
)

var demoQuery = domain.RouteQuery{
	Start: "123 Main St, Anytown",
	End:   "456 Elm St, Othertown",
}

// main runs one optimization for the demo address pair and prints the result.
// Pipeline failures are reported on stdout and still exit 0; only bootstrap
// failures exit 1.
func main() {
	if err := run(context.Background(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run wires the pipeline from the environment and reports one optimization.
// It returns instead of exiting so deferred closes and log flushes always run.
func run(ctx context.Context, stdout io.Writer) error {
	dotenv := config.LoadDotenv()

	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logging.New(cfg.AppEnv, "optimizer")
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if !dotenv {
		log.Debug("no .env file found (using environment variables)")
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

	report(ctx, stdout, services.NewPipeline(provider, history, log), demoQuery, log)
	return nil
}

// report executes the pipeline step by step and writes the fixed report to w.
func report(ctx context.Context, w io.Writer, p *services.Pipeline, query domain.RouteQuery, log *zap.Logger) {
	fmt.Fprintf(w, "Fetching route data for %s to %s\n", query.Start, query.End)
	candidates, err := p.Fetch(ctx, query)
	if err != nil {
		log.Error("an error occurred while fetching route data", zap.Error(err))
		fmt.Fprintln(w, "Failed to fetch route data.")
		return
	}

	fmt.Fprintln(w, "Optimizing route...")
	best, err := p.Select(ctx, query, candidates)
	if err != nil {
		log.Error("an error occurred while optimizing the route", zap.Error(err))
		fmt.Fprintln(w, "Failed to find an optimal route.")
		return
	}

	fmt.Fprintln(w, "Optimal Route Found:")
	fmt.Fprintf(w, "Start: %s\n", best.Start)
	fmt.Fprintf(w, "End: %s\n", best.End)
	fmt.Fprintf(w, "Duration: %s minutes\n", formatNumber(best.DurationMinutes))
	fmt.Fprintf(w, "Distance: %s km\n", formatNumber(best.DistanceKm))
}

// formatNumber prints the shortest decimal form, so 10 stays "10" and 12.5 stays "12.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
