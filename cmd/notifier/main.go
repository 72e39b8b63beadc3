package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Pesokrava/storefront/internal/config"
	"github.com/Pesokrava/storefront/internal/delivery/events"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env)
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		appLogger.Fatal("Failed to set log level", err)
	}
	appLogger.Info("Starting notifier service...")

	consumer, err := events.NewConsumer(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS consumer", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Notifier service started and listening for storefront events...")

	if err := consumer.Run(ctx, events.LoggingHandler(appLogger)); err != nil {
		appLogger.Error("Notifier stopped with error", err)
	}

	appLogger.Info("Shutting down notifier service...")
}
