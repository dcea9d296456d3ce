package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gastrobase/recipe-api/internal/platform/logger"
	"github.com/gastrobase/recipe-api/internal/redact"
	"github.com/gastrobase/recipe-api/internal/store"
)

// Gate resolves request credentials into principals and scoped backend
// clients, and delegates login/refresh to the backend identity service.
//
// The gate itself never rejects a request: absent or unusable credentials
// resolve to "no principal", and it is the boundary layer's job to turn
// that into a 401 where auth is mandatory.
type Gate struct {
	verifier *TokenVerifier
	provider store.Provider
	log      *slog.Logger
}

// NewGate creates the authentication gate.
func NewGate(verifier *TokenVerifier, provider store.Provider, log *slog.Logger) *Gate {
	if log == nil {
		log = slog.Default()
	}
	return &Gate{
		verifier: verifier,
		provider: provider,
		log:      log.With(slog.String("component", "auth_gate")),
	}
}

// ResolvePrincipal decodes the raw bearer token and extracts the subject.
// An empty, expired, or otherwise invalid token yields (Nil, false) without
// an error. Expired, malformed, and wrong-signature tokens are
// distinguished only in debug logs.
func (g *Gate) ResolvePrincipal(ctx context.Context, rawToken string) (uuid.UUID, bool) {
	if rawToken == "" {
		return uuid.Nil, false
	}

	log := logger.FromContextOrDefault(ctx, g.log)

	payload, err := g.verifier.Decode(rawToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrExpiredToken):
			log.Debug("bearer token expired")
		case errors.Is(err, ErrWrongAudience):
			log.Debug("bearer token has wrong audience")
		default:
			log.Debug("bearer token invalid", slog.String("error", err.Error()))
		}
		return uuid.Nil, false
	}

	return payload.Subject, true
}

// AuthenticatedClient resolves the principal and acquires a backend client
// with the bearer token attached to all outbound calls. The caller owns the
// handle and must Close it on every exit path. Returns store.ErrNoClient
// when no principal could be resolved.
func (g *Gate) AuthenticatedClient(ctx context.Context, rawToken string) (store.Client, uuid.UUID, error) {
	principal, ok := g.ResolvePrincipal(ctx, rawToken)
	if !ok {
		return nil, uuid.Nil, store.ErrNoClient
	}

	client, err := g.provider.WithToken(ctx, rawToken)
	if err != nil {
		g.log.Error("failed to acquire authenticated backend client",
			slog.String("error", redact.Error(err)))
		return nil, uuid.Nil, err
	}
	return client, principal, nil
}

// AnonymousClient acquires a backend client with no attached identity, for
// public read operations. The caller must Close it.
func (g *Gate) AnonymousClient(ctx context.Context) (store.Client, error) {
	client, err := g.provider.Anonymous(ctx)
	if err != nil {
		g.log.Error("failed to acquire anonymous backend client",
			slog.String("error", redact.Error(err)))
		return nil, err
	}
	return client, nil
}

// Login forwards email/password to the backend sign-in call. Rejected
// credentials are a soft failure, not an error.
func (g *Gate) Login(ctx context.Context, email, password string) store.Result[*store.Session] {
	log := logger.FromContextOrDefault(ctx, g.log)

	session, err := g.provider.Auth().SignInWithPassword(ctx, email, password)
	if err != nil {
		log.Warn("sign-in rejected by backend", slog.String("error", redact.Error(err)))
		return store.Fail[*store.Session](store.ErrKindUnauthenticated)
	}
	return store.Ok(session, 1)
}

// Refresh exchanges a refresh token for a fresh token pair. This always
// delegates to the backend session-refresh call; a still-valid access token
// accompanying the request does not short-circuit the exchange.
func (g *Gate) Refresh(ctx context.Context, refreshToken string) store.Result[*store.Session] {
	log := logger.FromContextOrDefault(ctx, g.log)

	session, err := g.provider.Auth().RefreshSession(ctx, refreshToken)
	if err != nil {
		log.Warn("session refresh rejected by backend", slog.String("error", redact.Error(err)))
		return store.Fail[*store.Session](store.ErrKindBackend)
	}
	return store.Ok(session, 1)
}
