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

// TagHandler handles tag HTTP requests.
type TagHandler struct {
	gate      *auth.Gate
	ctrl      *controller.TagController
	validator *validator.Validate
	log       *slog.Logger
}

// NewTagHandler creates a new TagHandler with its dependencies.
func NewTagHandler(gate *auth.Gate, ctrl *controller.TagController, log *slog.Logger) *TagHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TagHandler{
		gate:      gate,
		ctrl:      ctrl,
		validator: validator.New(),
		log:       log.With(slog.String("component", "tag_handler")),
	}
}

// List handles GET /tags. Public; paginated; optional name filter.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.TagFilter{
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
			"Internal error retrieving tags resources", "Tag")
		return
	}
	defer closeClient(client, h.log)

	res := h.ctrl.Select(r.Context(), client, &filter)
	if !res.Success && res.Err != store.ErrKindNone {
		respondResultError(w, r, res, "Tag", "Internal error retrieving tags resources")
		return
	}

	resp := shared.Response{
		Status:       http.StatusOK,
		Message:      defaultMessage,
		ResourceType: "Tag",
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

// Get handles GET /tags/{id}. Public.
func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id", "Tag")
	if !ok {
		return
	}

	client, err := h.gate.AnonymousClient(r.Context())
	if err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"Error retrieving Tag", "Tag")
		return
	}
	defer closeClient(client, h.log)

	res := h.ctrl.Unique(r.Context(), client, id)
	if !res.Success {
		respondResultError(w, r, res, "Tag", "Error retrieving Tag")
		return
	}

	shared.RespondWithEnvelope(w, r, shared.Response{
		Status:       http.StatusOK,
		Message:      defaultMessage,
		ResourceType: "Tag",
		Data:         res.Data,
		Count:        shared.CountOf(res.Count),
		Path:         r.URL.Path,
	})
}

// Create handles POST /tags. Requires a bearer credential.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}

	var in domain.TagInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.RespondUnprocessable(w, r, validationFields(err), 1)
		return
	}
	if err := h.validator.Struct(in); err != nil {
		fields := validationFields(err)
		shared.RespondUnprocessable(w, r, fields, len(fields))
		return
	}

	save, err := domain.NewTagSave(in)
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
		respondResultError(w, r, res, "Tag", "Error storing resource")
		return
	}

	shared.RespondWithEnvelope(w, r, shared.Response{
		Status:       http.StatusCreated,
		Message:      defaultMessage,
		ResourceType: "Tag",
		Data:         res.Data,
		Count:        shared.CountOf(res.Count),
		Path:         r.URL.Path,
	})
}

// Update handles PATCH /tags/{id}. Requires a bearer credential.
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}

	id, ok := getPathUUID(w, r, "id", "Tag")
	if !ok {
		return
	}

	var in domain.TagInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.RespondUnprocessable(w, r, validationFields(err), 1)
		return
	}
	if err := h.validator.Struct(in); err != nil {
		fields := validationFields(err)
		shared.RespondUnprocessable(w, r, fields, len(fields))
		return
	}

	save, err := domain.TagUpdate(id, in)
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
		respondResultError(w, r, res, "Tag", "Error updating resource")
		return
	}

	shared.RespondWithEnvelope(w, r, shared.Response{
		Status:       http.StatusOK,
		Message:      defaultMessage,
		ResourceType: "Tag",
		Data:         res.Data,
		Count:        shared.CountOf(res.Count),
		Path:         r.URL.Path,
	})
}

// Delete handles DELETE /tags/{id}. Requires a bearer credential.
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}

	id, ok := getPathUUID(w, r, "id", "Tag")
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
		respondResultError(w, r, res, "Tag", "Error deleting resource")
		return
	}

	shared.RespondWithEnvelope(w, r, shared.Response{
		Status:       http.StatusOK,
		Message:      "Resource deleted successfully",
		ResourceType: "Tag",
		Count:        shared.CountOf(res.Count),
		Path:         r.URL.Path,
	})
}
