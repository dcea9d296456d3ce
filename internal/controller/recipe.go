package controller

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gastrobase/recipe-api/internal/domain"
	"github.com/gastrobase/recipe-api/internal/platform/logger"
	"github.com/gastrobase/recipe-api/internal/redact"
	"github.com/gastrobase/recipe-api/internal/store"
)

// RecipeController orchestrates recipe operations. Writes go through the
// insert_recipe procedure (which owns the tag junction rows); reads come from
// the recipes_full view, which embeds tags and the owning category.
type RecipeController struct {
	log *slog.Logger
}

// NewRecipeController creates the recipe controller.
func NewRecipeController(log *slog.Logger) *RecipeController {
	if log == nil {
		log = slog.Default()
	}
	return &RecipeController{log: log.With(slog.String("component", "recipe_controller"))}
}

// Save inserts a new recipe via the backend procedure and returns its public
// shape.
func (c *RecipeController) Save(
	ctx context.Context,
	client store.Client,
	save *domain.RecipeSave,
) store.Result[*domain.RecipeOut] {
	log := logger.FromContextOrDefault(ctx, c.log)

	row, err := toRecord(save)
	if err != nil {
		log.Warn("failed to encode recipe payload", slog.String("error", err.Error()))
		return store.Fail[*domain.RecipeOut](store.ErrKindValidation)
	}

	rows, count, err := client.Invoke(ctx, recipeInsertFn, store.Record{"recipe_json": row})
	if err != nil {
		log.Error("backend procedure call failed",
			slog.String("fn", recipeInsertFn),
			slog.String("error", redact.Error(err)))
		return store.Fail[*domain.RecipeOut](store.ErrKindBackend)
	}
	if len(rows) == 0 {
		return store.Empty[*domain.RecipeOut]()
	}

	out, err := decodeRecord[domain.RecipeOut](rows[0])
	if err != nil {
		log.Warn("returned recipe row has unexpected shape", slog.String("error", err.Error()))
		return store.Fail[*domain.RecipeOut](store.ErrKindValidation)
	}
	return store.Ok(out, count)
}

// Update is intentionally unsupported: the backend has no sanitizing update
// procedure for recipes yet, and guessing one here would bypass the junction
// handling insert_recipe owns.
func (c *RecipeController) Update(
	ctx context.Context,
	client store.Client,
	save *domain.RecipeSave,
) store.Result[*domain.RecipeOut] {
	return store.Fail[*domain.RecipeOut](store.ErrKindUnsupported)
}

// Select lists recipes from the recipes_full view with range and exact
// count, optionally narrowed by title substring and category equality.
// The tag filter is accepted upstream but not yet applied here.
func (c *RecipeController) Select(
	ctx context.Context,
	client store.Client,
	filter *domain.RecipeFilter,
) store.Result[[]domain.RecipeOut] {
	log := logger.FromContextOrDefault(ctx, c.log)
	filter.Normalize()

	q := store.SelectQuery{
		Offset: filter.Page * filter.Limit,
		End:    (filter.Page + 1) * filter.Limit,
	}
	if filter.Title != "" {
		q.Match = map[string]string{"title": filter.Title}
	}
	if filter.Category != uuid.Nil {
		q.Eq = map[string]string{"category_id": filter.Category.String()}
	}

	rows, count, err := client.Select(ctx, recipesView, q)
	if err != nil {
		log.Error("backend select failed",
			slog.String("table", recipesView),
			slog.String("error", redact.Error(err)))
		return store.Fail[[]domain.RecipeOut](store.ErrKindBackend)
	}
	if count == 0 {
		return store.Empty[[]domain.RecipeOut]()
	}

	out, err := decodeRecords[domain.RecipeOut](rows)
	if err != nil {
		log.Warn("returned recipe rows have unexpected shape", slog.String("error", err.Error()))
		return store.Fail[[]domain.RecipeOut](store.ErrKindValidation)
	}
	return store.Ok(out, count)
}

// Unique fetches a single recipe by identity from the recipes_full view,
// marking absence with ErrKindNoReturn.
func (c *RecipeController) Unique(
	ctx context.Context,
	client store.Client,
	id uuid.UUID,
) store.Result[*domain.RecipeOut] {
	log := logger.FromContextOrDefault(ctx, c.log)

	q := store.SelectQuery{
		End:    1,
		Eq:     map[string]string{"id": id.String()},
		Single: true,
	}
	rows, count, err := client.Select(ctx, recipesView, q)
	if err != nil {
		if store.IsNoRows(err) {
			return store.Fail[*domain.RecipeOut](store.ErrKindNoReturn)
		}
		log.Error("backend select failed",
			slog.String("table", recipesView),
			slog.String("id", id.String()),
			slog.String("error", redact.Error(err)))
		return store.Fail[*domain.RecipeOut](store.ErrKindBackend)
	}
	if count == 0 || len(rows) == 0 {
		return store.Fail[*domain.RecipeOut](store.ErrKindNoReturn)
	}

	out, err := decodeRecord[domain.RecipeOut](rows[0])
	if err != nil {
		log.Warn("returned recipe row has unexpected shape",
			slog.String("id", id.String()),
			slog.String("error", err.Error()))
		return store.Fail[*domain.RecipeOut](store.ErrKindValidation)
	}
	return store.Ok(out, 1)
}

// Delete removes a recipe by identity from the base table; the junction rows
// go with it via cascade. Absence is a successful no-op with count zero.
func (c *RecipeController) Delete(
	ctx context.Context,
	client store.Client,
	id uuid.UUID,
) store.Result[*domain.RecipeOut] {
	log := logger.FromContextOrDefault(ctx, c.log)

	count, err := client.Delete(ctx, recipesTable, id)
	if err != nil {
		log.Error("backend delete failed",
			slog.String("table", recipesTable),
			slog.String("id", id.String()),
			slog.String("error", redact.Error(err)))
		return store.Fail[*domain.RecipeOut](store.ErrKindBackend)
	}
	return store.Result[*domain.RecipeOut]{Success: true, Count: count}
}
