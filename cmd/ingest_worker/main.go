package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/granaapp/grana_backend/internal/amqp"
	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/granaapp/grana_backend/internal/core/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/granaapp/grana_backend/internal/platform/config"
	"github.com/granaapp/grana_backend/internal/repositories/database/pgsql"
	"github.com/granaapp/grana_backend/pkg/database"
)

// The ingest worker consumes movement drafts published by external
// producers (statement importers, bank bridges) and records them through
// the same validation path as the API.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the ingest worker")
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

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer client.Close()

	logger.Info("Ingest worker started",
		slog.String("exchange", cfg.AMQPExchange),
		slog.String("queue", cfg.AMQPQueue))

	handler := func(msg *amqp.MovementIngestMessage) error {
		externalID := msg.ExternalID
		req := dto.CreateMovementRequest{
			AccountID:      msg.AccountID,
			Description:    msg.Description,
			Amount:         msg.Amount,
			Date:           msg.Date,
			Kind:           msg.Kind,
			Origin:         domain.OriginExternalMessage,
			ExternalID:     &externalID,
			Notes:          msg.Notes,
			AutoCategorize: msg.AutoCategorize,
		}
		_, err := serviceContainer.Movement.CreateMovement(ctx, msg.OwnerID, req)
		return err
	}

	if err := client.ConsumeMovementIngest(ctx, handler); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Consumer stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Ingest worker shut down.")
}
