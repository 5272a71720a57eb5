package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/portfolio-service/internal/app"
	"github.com/Kamar-Folarin/portfolio-service/internal/config"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration; a missing GitHub username stops startup here
	cfg, err := config.Load()
	if err != nil {
		app.NewLogger("info").WithError(err).Fatal("Failed to load configuration")
	}

	logger := app.NewLogger(cfg.LogLevel)
	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Error("Server stopped with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.WithError(err).Error("Failed to close cache")
		}
	}()

	return application.Serve(ctx)
}
