// Package middleware provides the HTTP middleware chain pieces: trace ID
// injection and optional bearer-token extraction.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gastrobase/recipe-api/internal/api/shared"
)

// Trace adds a trace ID to the request context and logs the request start.
// Apply it early so all downstream handlers can correlate on the ID.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		slog.Debug("request started",
			slog.String("trace_id", shared.GetTraceID(ctx)),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
