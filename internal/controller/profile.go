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

const profilesTable = "profiles"

// ProfileController reads user profiles. Profiles are provisioned out of
// band, so only the lookup path exists here.
type ProfileController struct {
	log *slog.Logger
}

// NewProfileController creates the profile controller.
func NewProfileController(log *slog.Logger) *ProfileController {
	if log == nil {
		log = slog.Default()
	}
	return &ProfileController{log: log.With(slog.String("component", "profile_controller"))}
}

// ByUser fetches the profile owned by the given user. The admin flag and
// row timestamps are stripped before the shape leaves the controller.
func (c *ProfileController) ByUser(
	ctx context.Context,
	client store.Client,
	userID uuid.UUID,
) store.Result[*domain.ProfileOut] {
	log := logger.FromContextOrDefault(ctx, c.log)

	q := store.SelectQuery{
		End:    1,
		Eq:     map[string]string{"user_id": userID.String()},
		Single: true,
	}
	rows, count, err := client.Select(ctx, profilesTable, q)
	if err != nil {
		if store.IsNoRows(err) {
			return store.Fail[*domain.ProfileOut](store.ErrKindNoReturn)
		}
		log.Error("backend select failed",
			slog.String("table", profilesTable),
			slog.String("user_id", userID.String()),
			slog.String("error", redact.Error(err)))
		return store.Fail[*domain.ProfileOut](store.ErrKindBackend)
	}
	if count == 0 || len(rows) == 0 {
		return store.Fail[*domain.ProfileOut](store.ErrKindNoReturn)
	}

	rec, err := decodeRecord[domain.ProfileRecord](rows[0])
	if err != nil {
		log.Warn("returned profile row has unexpected shape",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return store.Fail[*domain.ProfileOut](store.ErrKindValidation)
	}
	out := rec.Public()
	return store.Ok(&out, 1)
}
