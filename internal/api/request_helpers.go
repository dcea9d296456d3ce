package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gastrobase/recipe-api/internal/api/shared"
	"github.com/gastrobase/recipe-api/internal/store"
)

// defaultMessage is the envelope message for plain successful responses.
const defaultMessage = "Success response"

// getPathUUID extracts and parses a UUID path parameter. A missing or
// malformed value is reported as a 404 on the spot, since no resource can
// live at such a path.
func getPathUUID(w http.ResponseWriter, r *http.Request, param, resourceType string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Resource not found", resourceType)
		return uuid.Nil, false
	}
	return id, true
}

// requirePrincipal enforces mandatory auth on protected operations. When no
// principal was resolved it answers 401 with the bearer challenge and the
// request never reaches the backend.
func requirePrincipal(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	principal, ok := shared.Principal(r.Context())
	if !ok {
		shared.RespondUnauthenticated(w, r)
		return uuid.Nil, false
	}
	return principal, true
}

// respondResultError translates a failed controller result into the
// matching error envelope. fallback is the 500-level client-safe message.
func respondResultError[T any](w http.ResponseWriter, r *http.Request, res store.Result[T], resourceType, fallback string) {
	status := statusForKind(res.Err)
	if status == http.StatusUnauthorized {
		shared.RespondUnauthenticated(w, r)
		return
	}
	shared.RespondWithError(w, r, status, messageForKind(res.Err, fallback), resourceType)
}

// closeClient releases a per-request backend client. Close failures are
// logged and otherwise ignored since the response is already committed.
func closeClient(client store.Client, log *slog.Logger) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.Warn("failed to close backend client", slog.String("error", err.Error()))
	}
}
