package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/gastrobase/recipe-api/internal/api"
	"github.com/gastrobase/recipe-api/internal/api/middleware"
	"github.com/gastrobase/recipe-api/internal/api/shared"
	"github.com/gastrobase/recipe-api/internal/config"
	"github.com/gastrobase/recipe-api/internal/service/auth"
)

// apiRoot anchors the public surface; apiVersion segments the resource
// routes beneath it. Auth routes live at the root so tokens survive a
// version bump.
const (
	apiRoot    = "/api"
	apiVersion = "/v1.0"
)

// handlerSet groups the route handlers the router mounts.
type handlerSet struct {
	auth     *api.AuthHandler
	category *api.CategoryHandler
	tag      *api.TagHandler
	recipe   *api.RecipeHandler
	user     *api.UserHandler
}

// newRouter assembles the route tree. Bearer extraction runs on every
// request but never rejects; each protected handler enforces the principal
// itself so public routes stay free of auth round trips.
func newRouter(cfg *config.Config, gate *auth.Gate, h handlerSet) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Trace)
	r.Use(middleware.NewBearer(gate).Extract)

	r.Get("/health", healthHandler(cfg))

	r.Route(apiRoot, func(r chi.Router) {
		r.Post("/login", h.auth.Login)
		r.Post("/token/refresh", h.auth.Refresh)

		r.Route(apiVersion, func(r chi.Router) {
			r.Get("/users/me", h.user.Me)

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.category.List)
				r.Post("/", h.category.Create)
				r.Get("/{id}", h.category.Get)
				r.Patch("/{id}", h.category.Update)
				r.Delete("/{id}", h.category.Delete)
			})

			r.Route("/tags", func(r chi.Router) {
				r.Get("/", h.tag.List)
				r.Post("/", h.tag.Create)
				r.Get("/{id}", h.tag.Get)
				r.Patch("/{id}", h.tag.Update)
				r.Delete("/{id}", h.tag.Delete)
			})

			r.Route("/recipes", func(r chi.Router) {
				r.Get("/", h.recipe.List)
				r.Post("/", h.recipe.Create)
				r.Get("/{id}", h.recipe.Get)
				r.Patch("/{id}", h.recipe.Update)
				r.Delete("/{id}", h.recipe.Delete)
			})
		})
	})

	return r
}

// healthHandler reports liveness and the running version.
func healthHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
			"status":  "ok",
			"name":    cfg.Project.Name,
			"version": cfg.Project.Version,
		})
	}
}
