package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/gastrobase/recipe-api/internal/api/shared"
	"github.com/gastrobase/recipe-api/internal/service/auth"
)

// LoginRequest carries the credentials for an access token exchange.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh grant for a token rotation.
type RefreshRequest struct {
	GrantType    string `json:"grant_type"    validate:"required,eq=refresh_token"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthHandler handles the credential exchange routes.
type AuthHandler struct {
	gate      *auth.Gate
	validator *validator.Validate
	log       *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(gate *auth.Gate, log *slog.Logger) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		gate:      gate,
		validator: validator.New(),
		log:       log.With(slog.String("component", "auth_handler")),
	}
}

// Login handles POST /login. Valid credentials yield a session envelope;
// anything else is a uniform 401 so callers cannot probe for accounts.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondUnprocessable(w, r, validationFields(err), 1)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		fields := validationFields(err)
		shared.RespondUnprocessable(w, r, fields, len(fields))
		return
	}

	res := h.gate.Login(r.Context(), req.Email, req.Password)
	if !res.Success {
		shared.RespondUnauthenticated(w, r)
		return
	}

	shared.RespondWithEnvelope(w, r, shared.Response{
		Status:       http.StatusOK,
		Message:      defaultMessage,
		ResourceType: "Tokens",
		Data:         res.Data,
		Count:        shared.CountOf(res.Count),
		Path:         r.URL.Path,
	})
}

// Refresh handles POST /token/refresh. Rotation always round-trips to the
// backend so revoked refresh tokens are rejected there.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondUnprocessable(w, r, validationFields(err), 1)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		fields := validationFields(err)
		shared.RespondUnprocessable(w, r, fields, len(fields))
		return
	}

	res := h.gate.Refresh(r.Context(), req.RefreshToken)
	if !res.Success {
		shared.RespondUnauthenticated(w, r)
		return
	}

	shared.RespondWithEnvelope(w, r, shared.Response{
		Status:       http.StatusOK,
		Message:      defaultMessage,
		ResourceType: "Tokens",
		Data:         res.Data,
		Count:        shared.CountOf(res.Count),
		Path:         r.URL.Path,
	})
}
