package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"gastos/internal/amqp"
	"gastos/internal/backend"
	"gastos/internal/config"
	"gastos/internal/log"
	"gastos/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()
	logger := log.Setup(cfg.LogLevel, "gastos-worker")

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the audit worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	be, err := backend.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open data backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer be.Close()

	// The backend treats the queue as optional; the worker cannot run
	// without it.
	amqpClient := be.Events
	if amqpClient == nil {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect AMQP", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
	}

	auditWorker := worker.NewAuditWorker(be.Adapter)

	logger.Info("Starting audit worker",
		"engine", be.Adapter.Engine(), "queue", cfg.AMQPQueue)

	err = amqpClient.ConsumeExpenseEvents(ctx, func(msg *amqp.ExpenseEventMessage) error {
		return auditWorker.HandleEvent(ctx, msg)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Event consumption failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
