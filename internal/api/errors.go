// Package api implements the HTTP boundary: resource handlers, the uniform
// response envelope, pagination ingress/egress, and the translation of
// controller soft-failures into transport-level errors.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gastrobase/recipe-api/internal/domain"
	"github.com/gastrobase/recipe-api/internal/store"
)

// statusForKind maps a controller error marker to the HTTP status the
// boundary answers with. Backend and coercion failures deliberately collapse
// to 500 with a generic message; their details are logged, never echoed.
func statusForKind(kind store.ErrKind) int {
	switch kind {
	case store.ErrKindNoReturn:
		return http.StatusNotFound
	case store.ErrKindUnauthenticated:
		return http.StatusUnauthorized
	case store.ErrKindUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// messageForKind picks the client-safe message for a failed result.
func messageForKind(kind store.ErrKind, fallback string) string {
	switch kind {
	case store.ErrKindNoReturn:
		return "Resource not found"
	case store.ErrKindUnauthenticated:
		return "Cannot authenticate user, invalid credentials"
	case store.ErrKindUnsupported:
		return "Operation not supported"
	default:
		return fallback
	}
}

// validationFields renders a validator error as the {type, loc, msg} entries
// the 422 envelope carries. Non-validator errors fall back to one generic
// entry so the body shape stays uniform.
func validationFields(err error) []domain.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []domain.FieldError{{Type: "invalid", Loc: "body", Msg: "malformed request body"}}
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{
			Type: fe.Tag(),
			Loc:  "body -> " + strings.ToLower(fe.Field()),
			Msg:  validationMessage(fe),
		})
	}
	return fields
}

// queryValidationFields mirrors validationFields for query-parameter
// shapes, pointing the location at the query string instead of the body.
func queryValidationFields(err error) []domain.FieldError {
	fields := validationFields(err)
	for i := range fields {
		fields[i].Loc = strings.Replace(fields[i].Loc, "body", "query", 1)
	}
	return fields
}

// validationMessage maps validation tags to user-facing messages.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "email":
		return "invalid email format"
	case "min":
		return "value too short"
	case "max":
		return "value too long"
	case "gt", "gte":
		return "value too small"
	case "eq", "oneof":
		return "invalid value"
	case "url":
		return "invalid URL"
	default:
		return "validation failed"
	}
}
