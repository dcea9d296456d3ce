// Command server runs the recipe catalog HTTP API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gastrobase/recipe-api/internal/config"
	"github.com/gastrobase/recipe-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed to start: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(logger.LoggerConfig{
		Level: cfg.Server.LogLevel,
		Debug: cfg.Project.Debug,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	log.Info("starting server",
		slog.String("name", cfg.Project.Name),
		slog.String("version", cfg.Project.Version),
		slog.String("backend", cfg.Backend.Kind),
		slog.Int("port", cfg.Server.Port))

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	return serve(ctx, cfg.Server.Port, app.Router(), log)
}
