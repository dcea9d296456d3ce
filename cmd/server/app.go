package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gastrobase/recipe-api/internal/api"
	"github.com/gastrobase/recipe-api/internal/config"
	"github.com/gastrobase/recipe-api/internal/controller"
	"github.com/gastrobase/recipe-api/internal/platform/postgres"
	"github.com/gastrobase/recipe-api/internal/platform/postgrest"
	"github.com/gastrobase/recipe-api/internal/service/auth"
	"github.com/gastrobase/recipe-api/internal/store"
)

// application bundles the wired dependency graph.
type application struct {
	cfg      *config.Config
	log      *slog.Logger
	provider store.Provider
	router   http.Handler
}

// newApplication builds the full dependency graph from configuration.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	verifier, err := auth.NewTokenVerifier(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token verifier: %w", err)
	}

	provider, err := buildProvider(ctx, cfg, verifier, log)
	if err != nil {
		return nil, err
	}

	gate := auth.NewGate(verifier, provider, log)

	handlers := handlerSet{
		auth:     api.NewAuthHandler(gate, log),
		category: api.NewCategoryHandler(gate, controller.NewCategoryController(log), log),
		tag:      api.NewTagHandler(gate, controller.NewTagController(log), log),
		recipe:   api.NewRecipeHandler(gate, controller.NewRecipeController(log), log),
		user:     api.NewUserHandler(gate, controller.NewProfileController(log), log),
	}

	app := &application{
		cfg:      cfg,
		log:      log,
		provider: provider,
	}
	app.router = newRouter(cfg, gate, handlers)
	return app, nil
}

// buildProvider selects the backend adapter by configuration.
func buildProvider(
	ctx context.Context,
	cfg *config.Config,
	verifier *auth.TokenVerifier,
	log *slog.Logger,
) (store.Provider, error) {
	switch cfg.Backend.Kind {
	case "postgrest":
		provider, err := postgrest.NewProvider(postgrest.Config{
			URL:        cfg.Backend.URL,
			AnonKey:    cfg.Backend.AnonKey,
			ServiceKey: cfg.Backend.ServiceKey,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create backend provider: %w", err)
		}
		return provider, nil
	case "postgres":
		db, err := postgres.Open(ctx, cfg.Backend.URL, log)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		refresh := time.Duration(cfg.Auth.RefreshExpirationSeconds) * time.Second
		return postgres.NewProvider(db, verifier, refresh, log), nil
	default:
		return nil, fmt.Errorf("unknown backend kind %q", cfg.Backend.Kind)
	}
}

// Router returns the HTTP handler tree.
func (a *application) Router() http.Handler {
	return a.router
}

// Close releases long-lived resources, most notably the admin backend
// handle.
func (a *application) Close(ctx context.Context) {
	if err := a.provider.Close(ctx); err != nil {
		a.log.Error("failed to close backend provider", slog.String("error", err.Error()))
	}
}
