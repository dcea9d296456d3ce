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

// CategoryController orchestrates category operations against the backend.
type CategoryController struct {
	log *slog.Logger
}

// NewCategoryController creates the category controller. Construction is
// cheap and idempotent; the application builds one instance at startup.
func NewCategoryController(log *slog.Logger) *CategoryController {
	if log == nil {
		log = slog.Default()
	}
	return &CategoryController{log: log.With(slog.String("component", "category_controller"))}
}

// Save inserts a new category and returns its public shape.
func (c *CategoryController) Save(
	ctx context.Context,
	client store.Client,
	save *domain.CategorySave,
) store.Result[*domain.CategoryOut] {
	log := logger.FromContextOrDefault(ctx, c.log)

	row, err := toRecord(save)
	if err != nil {
		log.Warn("failed to encode category payload", slog.String("error", err.Error()))
		return store.Fail[*domain.CategoryOut](store.ErrKindValidation)
	}

	rows, count, err := client.Insert(ctx, categoriesTable, row)
	if err != nil {
		log.Error("backend insert failed",
			slog.String("table", categoriesTable),
			slog.String("error", redact.Error(err)))
		return store.Fail[*domain.CategoryOut](store.ErrKindBackend)
	}
	if len(rows) == 0 {
		return store.Empty[*domain.CategoryOut]()
	}

	out, err := decodeRecord[domain.CategoryOut](rows[0])
	if err != nil {
		log.Warn("returned category row has unexpected shape", slog.String("error", err.Error()))
		return store.Fail[*domain.CategoryOut](store.ErrKindValidation)
	}
	return store.Ok(out, count)
}

// Update mutates an existing category, keyed by identity. The identity
// column is excluded from the mutated set.
func (c *CategoryController) Update(
	ctx context.Context,
	client store.Client,
	save *domain.CategorySave,
) store.Result[*domain.CategoryOut] {
	log := logger.FromContextOrDefault(ctx, c.log)

	row, err := toRecord(save)
	if err != nil {
		log.Warn("failed to encode category payload", slog.String("error", err.Error()))
		return store.Fail[*domain.CategoryOut](store.ErrKindValidation)
	}
	delete(row, "id")

	rows, count, err := client.Update(ctx, categoriesTable, save.ID, row)
	if err != nil {
		log.Error("backend update failed",
			slog.String("table", categoriesTable),
			slog.String("id", save.ID.String()),
			slog.String("error", redact.Error(err)))
		return store.Fail[*domain.CategoryOut](store.ErrKindBackend)
	}
	if len(rows) == 0 {
		return store.Empty[*domain.CategoryOut]()
	}

	out, err := decodeRecord[domain.CategoryOut](rows[0])
	if err != nil {
		log.Warn("returned category row has unexpected shape", slog.String("error", err.Error()))
		return store.Fail[*domain.CategoryOut](store.ErrKindValidation)
	}
	return store.Ok(out, count)
}

// Select lists categories with range and exact count, optionally narrowed by
// a case-insensitive name substring.
func (c *CategoryController) Select(
	ctx context.Context,
	client store.Client,
	filter *domain.CategoryFilter,
) store.Result[[]domain.CategoryOut] {
	log := logger.FromContextOrDefault(ctx, c.log)
	filter.Normalize()

	q := store.SelectQuery{
		Offset: filter.Page * filter.Limit,
		End:    (filter.Page + 1) * filter.Limit,
	}
	if filter.Name != "" {
		q.Match = map[string]string{"name": filter.Name}
	}

	rows, count, err := client.Select(ctx, categoriesTable, q)
	if err != nil {
		log.Error("backend select failed",
			slog.String("table", categoriesTable),
			slog.String("error", redact.Error(err)))
		return store.Fail[[]domain.CategoryOut](store.ErrKindBackend)
	}
	if count == 0 {
		return store.Empty[[]domain.CategoryOut]()
	}

	out, err := decodeRecords[domain.CategoryOut](rows)
	if err != nil {
		log.Warn("returned category rows have unexpected shape", slog.String("error", err.Error()))
		return store.Fail[[]domain.CategoryOut](store.ErrKindValidation)
	}
	return store.Ok(out, count)
}

// Unique fetches a single category by identity. Absence is marked with
// ErrKindNoReturn so the boundary can answer 404 instead of 500.
func (c *CategoryController) Unique(
	ctx context.Context,
	client store.Client,
	id uuid.UUID,
) store.Result[*domain.CategoryOut] {
	log := logger.FromContextOrDefault(ctx, c.log)

	q := store.SelectQuery{
		End:    1,
		Eq:     map[string]string{"id": id.String()},
		Single: true,
	}
	rows, count, err := client.Select(ctx, categoriesTable, q)
	if err != nil {
		if store.IsNoRows(err) {
			return store.Fail[*domain.CategoryOut](store.ErrKindNoReturn)
		}
		log.Error("backend select failed",
			slog.String("table", categoriesTable),
			slog.String("id", id.String()),
			slog.String("error", redact.Error(err)))
		return store.Fail[*domain.CategoryOut](store.ErrKindBackend)
	}
	if count == 0 || len(rows) == 0 {
		return store.Fail[*domain.CategoryOut](store.ErrKindNoReturn)
	}

	out, err := decodeRecord[domain.CategoryOut](rows[0])
	if err != nil {
		log.Warn("returned category row has unexpected shape",
			slog.String("id", id.String()),
			slog.String("error", err.Error()))
		return store.Fail[*domain.CategoryOut](store.ErrKindValidation)
	}
	return store.Ok(out, 1)
}

// Delete removes a category by identity. Deleting an absent identity is a
// successful no-op with count zero; only a backend failure is an error.
func (c *CategoryController) Delete(
	ctx context.Context,
	client store.Client,
	id uuid.UUID,
) store.Result[*domain.CategoryOut] {
	log := logger.FromContextOrDefault(ctx, c.log)

	count, err := client.Delete(ctx, categoriesTable, id)
	if err != nil {
		log.Error("backend delete failed",
			slog.String("table", categoriesTable),
			slog.String("id", id.String()),
			slog.String("error", redact.Error(err)))
		return store.Fail[*domain.CategoryOut](store.ErrKindBackend)
	}
	log.Debug("category delete completed",
		slog.String("id", id.String()),
		slog.Int("count", count))
	return store.Result[*domain.CategoryOut]{Success: true, Count: count}
}
