package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/gastrobase/recipe-api/internal/api/shared"
	"github.com/gastrobase/recipe-api/internal/controller"
	"github.com/gastrobase/recipe-api/internal/domain"
	"github.com/gastrobase/recipe-api/internal/service/auth"
	"github.com/gastrobase/recipe-api/internal/store"
)

// RecipeHandler handles recipe HTTP requests.
type RecipeHandler struct {
	gate      *auth.Gate
	ctrl      *controller.RecipeController
	validator *validator.Validate
	log       *slog.Logger
}

// NewRecipeHandler creates a new RecipeHandler with its dependencies.
func NewRecipeHandler(gate *auth.Gate, ctrl *controller.RecipeController, log *slog.Logger) *RecipeHandler {
	if log == nil {
		log = slog.Default()
	}
	return &RecipeHandler{
		gate:      gate,
		ctrl:      ctrl,
		validator: validator.New(),
		log:       log.With(slog.String("component", "recipe_handler")),
	}
}

// List handles GET /recipes. Public; paginated; optional title and category
// filters. A tag filter is accepted but not applied yet.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.RecipeFilter{
		Pagination: parsePagination(r.URL.Query()),
		Title:      r.URL.Query().Get("title"),
	}
	if raw := r.URL.Query().Get("category"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.Category = id
		}
	}
	if raw := r.URL.Query().Get("tag"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.Tag = id
		}
	}
	if err := h.validator.Struct(filter); err != nil {
		fields := queryValidationFields(err)
		shared.RespondUnprocessable(w, r, fields, len(fields))
		return
	}

	client, err := h.gate.AnonymousClient(r.Context())
	if err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"Internal error retrieving recipes resources", "Recipe")
		return
	}
	defer closeClient(client, h.log)

	res := h.ctrl.Select(r.Context(), client, &filter)
	if !res.Success && res.Err != store.ErrKindNone {
		respondResultError(w, r, res, "Recipe", "Internal error retrieving recipes resources")
		return
	}

	resp := shared.Response{
		Status:       http.StatusOK,
		Message:      defaultMessage,
		ResourceType: "Recipe",
		Data:         res.Data,
		Count:        shared.CountOf(res.Count),
		Path:         r.URL.Path,
	}
	if hasNextPage(filter.Page, filter.Limit, res.Count) {
		resp.Next = nextLink(r, filter.Page, filter.Skip, filter.Limit,
			nextValues{
				strings: map[string]string{"title": filter.Title},
				ids:     map[string]uuid.UUID{"category": filter.Category, "tag": filter.Tag},
			})
	}
	shared.RespondWithEnvelope(w, r, resp)
}

// Get handles GET /recipes/{id}. Public.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id", "Recipe")
	if !ok {
		return
	}

	client, err := h.gate.AnonymousClient(r.Context())
	if err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"Error retrieving Recipe", "Recipe")
		return
	}
	defer closeClient(client, h.log)

	res := h.ctrl.Unique(r.Context(), client, id)
	if !res.Success {
		respondResultError(w, r, res, "Recipe", "Error retrieving Recipe")
		return
	}

	shared.RespondWithEnvelope(w, r, shared.Response{
		Status:       http.StatusOK,
		Message:      defaultMessage,
		ResourceType: "Recipe",
		Data:         res.Data,
		Count:        shared.CountOf(res.Count),
		Path:         r.URL.Path,
	})
}

// Create handles POST /recipes. Requires a bearer credential. The resolved
// principal becomes the recipe owner.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var in domain.RecipeInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.RespondUnprocessable(w, r, validationFields(err), 1)
		return
	}
	if err := h.validator.Struct(in); err != nil {
		fields := validationFields(err)
		shared.RespondUnprocessable(w, r, fields, len(fields))
		return
	}

	save, err := domain.NewRecipeSave(in, principal)
	if err != nil {
		fields := []domain.FieldError{{Type: "invalid", Loc: "body", Msg: err.Error()}}
		shared.RespondUnprocessable(w, r, fields, len(fields))
		return
	}

	client, _, err := h.gate.AuthenticatedClient(r.Context(), shared.BearerToken(r.Context()))
	if err != nil {
		shared.RespondUnauthenticated(w, r)
		return
	}
	defer closeClient(client, h.log)

	res := h.ctrl.Save(r.Context(), client, save)
	if !res.Success {
		respondResultError(w, r, res, "Recipe", "Error storing resource")
		return
	}

	shared.RespondWithEnvelope(w, r, shared.Response{
		Status:       http.StatusCreated,
		Message:      defaultMessage,
		ResourceType: "Recipe",
		Data:         res.Data,
		Count:        shared.CountOf(res.Count),
		Path:         r.URL.Path,
	})
}

// Update handles PATCH /recipes/{id}. Recipe mutation touches the tag
// junction and is not supported yet, so the controller reports it as such
// and the route answers 501.
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	id, ok := getPathUUID(w, r, "id", "Recipe")
	if !ok {
		return
	}

	var in domain.RecipeInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.RespondUnprocessable(w, r, validationFields(err), 1)
		return
	}
	if err := h.validator.Struct(in); err != nil {
		fields := validationFields(err)
		shared.RespondUnprocessable(w, r, fields, len(fields))
		return
	}

	save, err := domain.NewRecipeSave(in, principal)
	if err != nil {
		fields := []domain.FieldError{{Type: "invalid", Loc: "body", Msg: err.Error()}}
		shared.RespondUnprocessable(w, r, fields, len(fields))
		return
	}
	save.ID = id

	client, _, err := h.gate.AuthenticatedClient(r.Context(), shared.BearerToken(r.Context()))
	if err != nil {
		shared.RespondUnauthenticated(w, r)
		return
	}
	defer closeClient(client, h.log)

	res := h.ctrl.Update(r.Context(), client, save)
	if !res.Success {
		respondResultError(w, r, res, "Recipe", "Error updating resource")
		return
	}

	shared.RespondWithEnvelope(w, r, shared.Response{
		Status:       http.StatusOK,
		Message:      defaultMessage,
		ResourceType: "Recipe",
		Data:         res.Data,
		Count:        shared.CountOf(res.Count),
		Path:         r.URL.Path,
	})
}

// Delete handles DELETE /recipes/{id}. Requires a bearer credential.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}

	id, ok := getPathUUID(w, r, "id", "Recipe")
	if !ok {
		return
	}

	client, _, err := h.gate.AuthenticatedClient(r.Context(), shared.BearerToken(r.Context()))
	if err != nil {
		shared.RespondUnauthenticated(w, r)
		return
	}
	defer closeClient(client, h.log)

	res := h.ctrl.Delete(r.Context(), client, id)
	if !res.Success {
		respondResultError(w, r, res, "Recipe", "Error deleting resource")
		return
	}

	shared.RespondWithEnvelope(w, r, shared.Response{
		Status:       http.StatusOK,
		Message:      "Resource deleted successfully",
		ResourceType: "Recipe",
		Count:        shared.CountOf(res.Count),
		Path:         r.URL.Path,
	})
}
