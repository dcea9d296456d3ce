package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/gastrobase/recipe-api/internal/api/middleware"
	"github.com/gastrobase/recipe-api/internal/api/shared"
	"github.com/gastrobase/recipe-api/internal/config"
	"github.com/gastrobase/recipe-api/internal/controller"
	"github.com/gastrobase/recipe-api/internal/service/auth"
	"github.com/gastrobase/recipe-api/internal/store"
)

// scriptedClient replays configured backend outcomes and records calls.
type scriptedClient struct {
	rows      []store.Record
	count     int
	err       error
	deleteN   int
	calls     int
	lastTable string
	lastArgs  store.Record
	closed    bool
}

var _ store.Client = (*scriptedClient)(nil)

func (c *scriptedClient) Insert(_ context.Context, table string, _ store.Record) ([]store.Record, int, error) {
	c.calls++
	c.lastTable = table
	return c.rows, c.count, c.err
}

func (c *scriptedClient) Update(_ context.Context, table string, _ uuid.UUID, _ store.Record) ([]store.Record, int, error) {
	c.calls++
	c.lastTable = table
	return c.rows, c.count, c.err
}

func (c *scriptedClient) Select(_ context.Context, table string, _ store.SelectQuery) ([]store.Record, int, error) {
	c.calls++
	c.lastTable = table
	return c.rows, c.count, c.err
}

func (c *scriptedClient) Delete(_ context.Context, table string, _ uuid.UUID) (int, error) {
	c.calls++
	c.lastTable = table
	return c.deleteN, c.err
}

func (c *scriptedClient) Invoke(_ context.Context, fn string, args store.Record) ([]store.Record, int, error) {
	c.calls++
	c.lastTable = fn
	c.lastArgs = args
	return c.rows, c.count, c.err
}

func (c *scriptedClient) Close() error {
	c.closed = true
	return nil
}

// scriptedAuth replays session outcomes for login/refresh tests.
type scriptedAuth struct {
	session *store.Session
	err     error
}

func (a *scriptedAuth) SignInWithPassword(context.Context, string, string) (*store.Session, error) {
	return a.session, a.err
}

func (a *scriptedAuth) RefreshSession(context.Context, string) (*store.Session, error) {
	return a.session, a.err
}

// scriptedProvider hands out the same scripted client for every handle.
type scriptedProvider struct {
	client *scriptedClient
	auth   *scriptedAuth
}

var _ store.Provider = (*scriptedProvider)(nil)

func (p *scriptedProvider) Anonymous(context.Context) (store.Client, error) { return p.client, nil }
func (p *scriptedProvider) WithToken(context.Context, string) (store.Client, error) {
	return p.client, nil
}
func (p *scriptedProvider) Admin() store.Client         { return p.client }
func (p *scriptedProvider) Auth() store.AuthService     { return p.auth }
func (p *scriptedProvider) Close(context.Context) error { return nil }

// testEnv bundles the wired handler surface for boundary tests.
type testEnv struct {
	router   chi.Router
	client   *scriptedClient
	authSvc  *scriptedAuth
	verifier *auth.TokenVerifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	verifier, err := auth.NewTokenVerifier(config.AuthConfig{
		JWTSecret:                "test-secret-key-thats-long-enough-for-hs256",
		Algorithm:                "HS256",
		ExpirationSeconds:        3600,
		RefreshExpirationSeconds: 604800,
	})
	require.NoError(t, err)

	client := &scriptedClient{}
	authSvc := &scriptedAuth{}
	provider := &scriptedProvider{client: client, auth: authSvc}
	gate := auth.NewGate(verifier, provider, nil)

	categoryHandler := NewCategoryHandler(gate, controller.NewCategoryController(nil), nil)
	tagHandler := NewTagHandler(gate, controller.NewTagController(nil), nil)
	recipeHandler := NewRecipeHandler(gate, controller.NewRecipeController(nil), nil)
	authHandler := NewAuthHandler(gate, nil)
	userHandler := NewUserHandler(gate, controller.NewProfileController(nil), nil)

	r := chi.NewRouter()
	r.Use(middleware.Trace)
	r.Use(middleware.NewBearer(gate).Extract)

	r.Post("/login", authHandler.Login)
	r.Post("/token/refresh", authHandler.Refresh)
	r.Get("/users/me", userHandler.Me)

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", categoryHandler.List)
		r.Post("/", categoryHandler.Create)
		r.Get("/{id}", categoryHandler.Get)
		r.Patch("/{id}", categoryHandler.Update)
		r.Delete("/{id}", categoryHandler.Delete)
	})
	r.Route("/tags", func(r chi.Router) {
		r.Get("/", tagHandler.List)
		r.Post("/", tagHandler.Create)
		r.Get("/{id}", tagHandler.Get)
		r.Patch("/{id}", tagHandler.Update)
		r.Delete("/{id}", tagHandler.Delete)
	})
	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", recipeHandler.List)
		r.Post("/", recipeHandler.Create)
		r.Get("/{id}", recipeHandler.Get)
		r.Patch("/{id}", recipeHandler.Update)
		r.Delete("/{id}", recipeHandler.Delete)
	})

	return &testEnv{
		router:   r,
		client:   client,
		authSvc:  authSvc,
		verifier: verifier,
	}
}

// token mints a valid bearer token for the given subject.
func (e *testEnv) token(t *testing.T, subject uuid.UUID) string {
	t.Helper()
	access, _, _, err := e.verifier.Mint(subject, "cook@example.com", time.Hour)
	require.NoError(t, err)
	return access
}

// do runs a request through the test router and decodes the envelope.
func (e *testEnv) do(t *testing.T, method, target, bearer string, body any) (*httptest.ResponseRecorder, shared.Response) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var resp shared.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}
