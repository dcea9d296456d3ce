package api

import (
	"log/slog"
	"net/http"

	"github.com/gastrobase/recipe-api/internal/api/shared"
	"github.com/gastrobase/recipe-api/internal/controller"
	"github.com/gastrobase/recipe-api/internal/service/auth"
)

// UserHandler serves the authenticated user's own profile.
type UserHandler struct {
	gate *auth.Gate
	ctrl *controller.ProfileController
	log  *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(gate *auth.Gate, ctrl *controller.ProfileController, log *slog.Logger) *UserHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UserHandler{
		gate: gate,
		ctrl: ctrl,
		log:  log.With(slog.String("component", "user_handler")),
	}
}

// Me handles GET /users/me. The bearer credential is optional; without one
// the route still answers 200, just with nothing to show. With a principal
// the profile is looked up by the token's subject, so there is no way to
// read another user's profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := shared.Principal(r.Context())
	if !ok {
		shared.RespondWithEnvelope(w, r, shared.Response{
			Status:       http.StatusOK,
			Message:      "No authenticated user",
			ResourceType: "Profile",
			Count:        shared.CountOf(0),
			Path:         r.URL.Path,
		})
		return
	}

	client, _, err := h.gate.AuthenticatedClient(r.Context(), shared.BearerToken(r.Context()))
	if err != nil {
		shared.RespondUnauthenticated(w, r)
		return
	}
	defer closeClient(client, h.log)

	res := h.ctrl.ByUser(r.Context(), client, principal)
	if !res.Success {
		respondResultError(w, r, res, "Profile", "Error retrieving Profile")
		return
	}

	shared.RespondWithEnvelope(w, r, shared.Response{
		Status:       http.StatusOK,
		Message:      defaultMessage,
		ResourceType: "Profile",
		Data:         res.Data,
		Count:        shared.CountOf(res.Count),
		Path:         r.URL.Path,
	})
}
