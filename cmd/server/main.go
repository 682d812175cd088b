package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/benched/internal/api"
	"github.com/mcoot/benched/internal/config"
	"github.com/mcoot/benched/internal/factory"
	"github.com/mcoot/benched/internal/logging"
)

func main() {
	// Set up logging with JSON output
	logger := logging.NewJSON(os.Stdout, false)
	slog.SetDefault(logger)

	// Settings come from BENCHED_CONFIG (or benched.yaml) plus the usual
	// environment overrides
	settings, err := config.Load(os.Getenv("BENCHED_CONFIG"))
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create application factory
	app, err := factory.New(factory.ConfigFrom(settings, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Roster.Load(ctx); err != nil {
		logger.Error("failed to load roster", slog.String("error", err.Error()))
		os.Exit(1)
	}
	app.StartLiveUpdates()

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = settings.Server.Host
	serverConfig.Port = settings.Server.Port

	serveErr := api.Serve(ctx, api.RouterConfig{
		Logger: logger,
		Roster: app.Roster,
		Random: app.Random,
		Hub:    app.Hub,
	}, serverConfig)

	// Flush pending roster writes before exiting
	closeErr := app.Close()

	if serveErr != nil {
		logger.Error("server error", slog.String("error", serveErr.Error()))
		os.Exit(1)
	}
	if closeErr != nil {
		logger.Error("failed to save roster", slog.String("error", closeErr.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}
