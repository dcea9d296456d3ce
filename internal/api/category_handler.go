package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/gastrobase/recipe-api/internal/api/shared"
	"github.com/gastrobase/recipe-api/internal/controller"
	"github.com/gastrobase/recipe-api/internal/domain"
	"github.com/gastrobase/recipe-api/internal/service/auth"
	"github.com/gastrobase/recipe-api/internal/store"
)

// CategoryHandler handles category HTTP requests.
type CategoryHandler struct {
	gate      *auth.Gate
	ctrl      *controller.CategoryController
	validator *validator.Validate
	log       *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler with its dependencies.
func NewCategoryHandler(gate *auth.Gate, ctrl *controller.CategoryController, log *slog.Logger) *CategoryHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CategoryHandler{
		gate:      gate,
		ctrl:      ctrl,
		validator: validator.New(),
		log:       log.With(slog.String("component", "category_handler")),
	}
}

// List handles GET /categories. Public; paginated; optional name filter.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.CategoryFilter{
		Pagination: parsePagination(r.URL.Query()),
		Name:       r.URL.Query().Get("name"),
	}
	if err := h.validator.Struct(filter); err != nil {
		fields := queryValidationFields(err)
		shared.RespondUnprocessable(w, r, fields, len(fields))
		return
	}

	client, err := h.gate.AnonymousClient(r.Context())
	if err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"Internal error retrieving categories resources", "Category")
		return
	}
	defer closeClient(client, h.log)

	res := h.ctrl.Select(r.Context(), client, &filter)
	if !res.Success && res.Err != store.ErrKindNone {
		respondResultError(w, r, res, "Category", "Internal error retrieving categories resources")
		return
	}

	resp := shared.Response{
		Status:       http.StatusOK,
		Message:      defaultMessage,
		ResourceType: "Category",
		Data:         res.Data,
		Count:        shared.CountOf(res.Count),
		Path:         r.URL.Path,
	}
	if hasNextPage(filter.Page, filter.Limit, res.Count) {
		resp.Next = nextLink(r, filter.Page, filter.Skip, filter.Limit,
			nextValues{strings: map[string]string{"name": filter.Name}})
	}
	shared.RespondWithEnvelope(w, r, resp)
}

// Get handles GET /categories/{id}. Public.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id", "Category")
	if !ok {
		return
	}

	client, err := h.gate.AnonymousClient(r.Context())
	if err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"Error retrieving Category", "Category")
		return
	}
	defer closeClient(client, h.log)

	res := h.ctrl.Unique(r.Context(), client, id)
	if !res.Success {
		respondResultError(w, r, res, "Category", "Error retrieving Category")
		return
	}

	shared.RespondWithEnvelope(w, r, shared.Response{
		Status:       http.StatusOK,
		Message:      defaultMessage,
		ResourceType: "Category",
		Data:         res.Data,
		Count:        shared.CountOf(res.Count),
		Path:         r.URL.Path,
	})
}

// Create handles POST /categories. Requires a bearer credential.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}

	var in domain.CategoryInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.RespondUnprocessable(w, r, validationFields(err), 1)
		return
	}
	if err := h.validator.Struct(in); err != nil {
		fields := validationFields(err)
		shared.RespondUnprocessable(w, r, fields, len(fields))
		return
	}

	save, err := domain.NewCategorySave(in)
	if err != nil {
		fields := []domain.FieldError{{Type: "invalid", Loc: "body -> name", Msg: err.Error()}}
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
		respondResultError(w, r, res, "Category", "Error storing resource")
		return
	}

	shared.RespondWithEnvelope(w, r, shared.Response{
		Status:       http.StatusCreated,
		Message:      defaultMessage,
		ResourceType: "Category",
		Data:         res.Data,
		Count:        shared.CountOf(res.Count),
		Path:         r.URL.Path,
	})
}

// Update handles PATCH /categories/{id}. Requires a bearer credential.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}

	id, ok := getPathUUID(w, r, "id", "Category")
	if !ok {
		return
	}

	var in domain.CategoryInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.RespondUnprocessable(w, r, validationFields(err), 1)
		return
	}
	if err := h.validator.Struct(in); err != nil {
		fields := validationFields(err)
		shared.RespondUnprocessable(w, r, fields, len(fields))
		return
	}

	save, err := domain.CategoryUpdate(id, in)
	if err != nil {
		fields := []domain.FieldError{{Type: "invalid", Loc: "body -> name", Msg: err.Error()}}
		shared.RespondUnprocessable(w, r, fields, len(fields))
		return
	}

	client, _, err := h.gate.AuthenticatedClient(r.Context(), shared.BearerToken(r.Context()))
	if err != nil {
		shared.RespondUnauthenticated(w, r)
		return
	}
	defer closeClient(client, h.log)

	res := h.ctrl.Update(r.Context(), client, save)
	if !res.Success {
		respondResultError(w, r, res, "Category", "Error updating resource")
		return
	}

	shared.RespondWithEnvelope(w, r, shared.Response{
		Status:       http.StatusOK,
		Message:      defaultMessage,
		ResourceType: "Category",
		Data:         res.Data,
		Count:        shared.CountOf(res.Count),
		Path:         r.URL.Path,
	})
}

// Delete handles DELETE /categories/{id}. Requires a bearer credential.
// Deleting an absent identity still succeeds with count zero.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}

	id, ok := getPathUUID(w, r, "id", "Category")
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
		respondResultError(w, r, res, "Category", "Error deleting resource")
		return
	}

	shared.RespondWithEnvelope(w, r, shared.Response{
		Status:       http.StatusOK,
		Message:      "Resource deleted successfully",
		ResourceType: "Category",
		Count:        shared.CountOf(res.Count),
		Path:         r.URL.Path,
	})
}
