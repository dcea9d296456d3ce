package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// ContextKey is the type for request context values.
type ContextKey string

// Context keys for request-scoped values.
const (
	// PrincipalContextKey holds the authenticated user's UUID, when the
	// request carried a usable bearer token.
	PrincipalContextKey ContextKey = "principal"

	// BearerTokenContextKey holds the raw bearer token string, when present.
	BearerTokenContextKey ContextKey = "bearerToken"

	// TraceIDKey holds the per-request trace ID.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID adds a fresh trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// rand.Read never fails in practice; fall back to a UUID if it does.
		return context.WithValue(ctx, TraceIDKey, uuid.NewString())
	}
	return context.WithValue(ctx, TraceIDKey, hex.EncodeToString(b))
}

// GetTraceID retrieves the trace ID from the context, or "" when absent.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// Principal retrieves the authenticated user's UUID from the context.
func Principal(ctx context.Context) (uuid.UUID, bool) {
	principal, ok := ctx.Value(PrincipalContextKey).(uuid.UUID)
	if !ok || principal == uuid.Nil {
		return uuid.Nil, false
	}
	return principal, true
}

// BearerToken retrieves the raw bearer token from the context, or "" when
// the request carried none.
func BearerToken(ctx context.Context) string {
	token, ok := ctx.Value(BearerTokenContextKey).(string)
	if !ok {
		return ""
	}
	return token
}
