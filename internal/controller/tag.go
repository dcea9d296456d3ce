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

// TagController orchestrates tag operations against the backend. Its
// contract mirrors CategoryController; tags and categories share a shape.
type TagController struct {
	log *slog.Logger
}

// NewTagController creates the tag controller.
func NewTagController(log *slog.Logger) *TagController {
	if log == nil {
		log = slog.Default()
	}
	return &TagController{log: log.With(slog.String("component", "tag_controller"))}
}

// Save inserts a new tag and returns its public shape.
func (c *TagController) Save(
	ctx context.Context,
	client store.Client,
	save *domain.TagSave,
) store.Result[*domain.TagOut] {
	log := logger.FromContextOrDefault(ctx, c.log)

	row, err := toRecord(save)
	if err != nil {
		log.Warn("failed to encode tag payload", slog.String("error", err.Error()))
		return store.Fail[*domain.TagOut](store.ErrKindValidation)
	}

	rows, count, err := client.Insert(ctx, tagsTable, row)
	if err != nil {
		log.Error("backend insert failed",
			slog.String("table", tagsTable),
			slog.String("error", redact.Error(err)))
		return store.Fail[*domain.TagOut](store.ErrKindBackend)
	}
	if len(rows) == 0 {
		return store.Empty[*domain.TagOut]()
	}

	out, err := decodeRecord[domain.TagOut](rows[0])
	if err != nil {
		log.Warn("returned tag row has unexpected shape", slog.String("error", err.Error()))
		return store.Fail[*domain.TagOut](store.ErrKindValidation)
	}
	return store.Ok(out, count)
}

// Update mutates an existing tag, keyed by identity.
func (c *TagController) Update(
	ctx context.Context,
	client store.Client,
	save *domain.TagSave,
) store.Result[*domain.TagOut] {
	log := logger.FromContextOrDefault(ctx, c.log)

	row, err := toRecord(save)
	if err != nil {
		log.Warn("failed to encode tag payload", slog.String("error", err.Error()))
		return store.Fail[*domain.TagOut](store.ErrKindValidation)
	}
	delete(row, "id")

	rows, count, err := client.Update(ctx, tagsTable, save.ID, row)
	if err != nil {
		log.Error("backend update failed",
			slog.String("table", tagsTable),
			slog.String("id", save.ID.String()),
			slog.String("error", redact.Error(err)))
		return store.Fail[*domain.TagOut](store.ErrKindBackend)
	}
	if len(rows) == 0 {
		return store.Empty[*domain.TagOut]()
	}

	out, err := decodeRecord[domain.TagOut](rows[0])
	if err != nil {
		log.Warn("returned tag row has unexpected shape", slog.String("error", err.Error()))
		return store.Fail[*domain.TagOut](store.ErrKindValidation)
	}
	return store.Ok(out, count)
}

// Select lists tags with range and exact count.
func (c *TagController) Select(
	ctx context.Context,
	client store.Client,
	filter *domain.TagFilter,
) store.Result[[]domain.TagOut] {
	log := logger.FromContextOrDefault(ctx, c.log)
	filter.Normalize()

	q := store.SelectQuery{
		Offset: filter.Page * filter.Limit,
		End:    (filter.Page + 1) * filter.Limit,
	}
	if filter.Name != "" {
		q.Match = map[string]string{"name": filter.Name}
	}

	rows, count, err := client.Select(ctx, tagsTable, q)
	if err != nil {
		log.Error("backend select failed",
			slog.String("table", tagsTable),
			slog.String("error", redact.Error(err)))
		return store.Fail[[]domain.TagOut](store.ErrKindBackend)
	}
	if count == 0 {
		return store.Empty[[]domain.TagOut]()
	}

	out, err := decodeRecords[domain.TagOut](rows)
	if err != nil {
		log.Warn("returned tag rows have unexpected shape", slog.String("error", err.Error()))
		return store.Fail[[]domain.TagOut](store.ErrKindValidation)
	}
	return store.Ok(out, count)
}

// Unique fetches a single tag by identity, marking absence with
// ErrKindNoReturn.
func (c *TagController) Unique(
	ctx context.Context,
	client store.Client,
	id uuid.UUID,
) store.Result[*domain.TagOut] {
	log := logger.FromContextOrDefault(ctx, c.log)

	q := store.SelectQuery{
		End:    1,
		Eq:     map[string]string{"id": id.String()},
		Single: true,
	}
	rows, count, err := client.Select(ctx, tagsTable, q)
	if err != nil {
		if store.IsNoRows(err) {
			return store.Fail[*domain.TagOut](store.ErrKindNoReturn)
		}
		log.Error("backend select failed",
			slog.String("table", tagsTable),
			slog.String("id", id.String()),
			slog.String("error", redact.Error(err)))
		return store.Fail[*domain.TagOut](store.ErrKindBackend)
	}
	if count == 0 || len(rows) == 0 {
		return store.Fail[*domain.TagOut](store.ErrKindNoReturn)
	}

	out, err := decodeRecord[domain.TagOut](rows[0])
	if err != nil {
		log.Warn("returned tag row has unexpected shape",
			slog.String("id", id.String()),
			slog.String("error", err.Error()))
		return store.Fail[*domain.TagOut](store.ErrKindValidation)
	}
	return store.Ok(out, 1)
}

// Delete removes a tag by identity; absence is a successful no-op.
func (c *TagController) Delete(
	ctx context.Context,
	client store.Client,
	id uuid.UUID,
) store.Result[*domain.TagOut] {
	log := logger.FromContextOrDefault(ctx, c.log)

	count, err := client.Delete(ctx, tagsTable, id)
	if err != nil {
		log.Error("backend delete failed",
			slog.String("table", tagsTable),
			slog.String("id", id.String()),
			slog.String("error", redact.Error(err)))
		return store.Fail[*domain.TagOut](store.ErrKindBackend)
	}
	return store.Result[*domain.TagOut]{Success: true, Count: count}
}
