package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/core/services"
	"github.com/granaapp/grana_backend/internal/platform/config"
	"github.com/granaapp/grana_backend/internal/repositories/database/pgsql"
	"github.com/granaapp/grana_backend/pkg/database"
)

// The recurrence worker periodically sweeps every recurring template and
// materializes its occurrences up to the configured horizon. The sweep is
// idempotent, so it can run alongside ad-hoc expansions from the API.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(repos, cfg)

	logger.Info("Recurrence worker started",
		slog.Duration("sweep_interval", cfg.RecurrenceSweepInterval),
		slog.Int("horizon_months", cfg.RecurrenceHorizonMonths))

	// Sweep once at startup, then on every tick
	runSweep(ctx, serviceContainer, cfg, logger)

	ticker := time.NewTicker(cfg.RecurrenceSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Recurrence worker shutting down", slog.String("reason", ctx.Err().Error()))
			return
		case <-ticker.C:
			runSweep(ctx, serviceContainer, cfg, logger)
		}
	}
}

func runSweep(ctx context.Context, serviceContainer *portssvc.ServiceContainer, cfg *config.Config, logger *slog.Logger) {
	horizon := time.Now().AddDate(0, cfg.RecurrenceHorizonMonths, 0)
	result, err := serviceContainer.Recurrence.ExpandDue(ctx, horizon)
	if err != nil {
		logger.Error("Expansion sweep failed", slog.String("error", err.Error()))
		return
	}
	logger.Info("Expansion sweep completed",
		slog.Int("generated", result.Generated),
		slog.Int("skipped", result.Skipped))
}
