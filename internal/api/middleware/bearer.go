package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gastrobase/recipe-api/internal/api/shared"
	"github.com/gastrobase/recipe-api/internal/service/auth"
)

// Bearer extracts an optional bearer token from the Authorization header and
// stores the raw token plus the resolved principal in the request context.
//
// It never rejects a request: credentials are optional at the transport
// layer, and handlers that require auth check for a principal themselves.
type Bearer struct {
	gate *auth.Gate
}

// NewBearer creates the bearer-extraction middleware.
func NewBearer(gate *auth.Gate) *Bearer {
	return &Bearer{gate: gate}
}

// Extract is the middleware function.
func (m *Bearer) Extract(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if token := tokenFromHeader(r); token != "" {
			ctx = context.WithValue(ctx, shared.BearerTokenContextKey, token)
			if principal, ok := m.gate.ResolvePrincipal(ctx, token); ok {
				ctx = context.WithValue(ctx, shared.PrincipalContextKey, principal)
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromHeader pulls the token out of "Authorization: Bearer <token>".
// Anything that is not a well-formed bearer header reads as no credentials.
func tokenFromHeader(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
