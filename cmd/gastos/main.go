package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"gastos/internal/backend"
	"gastos/internal/config"
	apphttp "gastos/internal/http"
	"gastos/internal/log"
	"gastos/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()
	logger := log.Setup(cfg.LogLevel, "gastos")

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
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

	expenseService := services.NewExpenseService(be.Expenses, be.Events)

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Options{
		Expenses:      expenseService,
		Categories:    be.Categories,
		Subcategories: be.Subcategories,
		Environment:   cfg.AppEnv,
		Production:    cfg.Production(),
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting gastos server",
			"port", cfg.Port, "engine", be.Adapter.Engine(), "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
