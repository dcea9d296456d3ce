package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/gastrobase/recipe-api/internal/service/auth"
	"github.com/gastrobase/recipe-api/internal/store"
)

// Provider hands out database handles over one pooled connection set. The
// SQL adapter enforces no per-identity row policies, so anonymous, bearer,
// and admin handles all resolve to the same pool; the distinction is kept
// so the provider stays interchangeable with the hosted adapter.
type Provider struct {
	db    *sql.DB
	admin *Client
	auth  *authService
	log   *slog.Logger
}

var _ store.Provider = (*Provider)(nil)

// NewProvider wraps an open database in the provider contract.
func NewProvider(
	db *sql.DB,
	verifier *auth.TokenVerifier,
	refreshLifetime time.Duration,
	log *slog.Logger,
) *Provider {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "postgres_provider"))
	return &Provider{
		db:    db,
		admin: &Client{db: db, log: log},
		auth: &authService{
			db:       db,
			verifier: verifier,
			password: auth.NewBcryptVerifier(),
			refresh:  refreshLifetime,
			log:      log,
		},
		log: log,
	}
}

// Anonymous acquires a handle with no attached identity.
func (p *Provider) Anonymous(_ context.Context) (store.Client, error) {
	return &Client{db: p.db, log: p.log}, nil
}

// WithToken acquires a handle for an authenticated caller.
func (p *Provider) WithToken(_ context.Context, accessToken string) (store.Client, error) {
	if accessToken == "" {
		return nil, store.ErrNoClient
	}
	return &Client{db: p.db, log: p.log}, nil
}

// Admin returns the process-wide privileged handle.
func (p *Provider) Admin() store.Client {
	return p.admin
}

// Auth returns the local credential exchange service.
func (p *Provider) Auth() store.AuthService {
	return p.auth
}

// Close releases the pooled connection set.
func (p *Provider) Close(_ context.Context) error {
	p.log.Info("closing database connection pool")
	return p.db.Close()
}
