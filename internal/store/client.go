// Package store defines the capability interfaces the application requires
// from its external persistence and identity backend, together with the
// soft-fail result type controllers hand to the API boundary. Any backend
// (hosted Postgres API, self-hosted Postgres) can satisfy these interfaces.
package store

import (
	"context"

	"github.com/google/uuid"
)

// Record is a single row exchanged with the backend in wire form.
type Record = map[string]any

// SelectQuery describes a ranged, exact-counted fetch. Offset and End are
// zero-based row positions; Eq filters by column equality and Match by
// case-insensitive substring. Single requests exactly one row.
type SelectQuery struct {
	Offset int
	End    int
	Eq     map[string]string
	Match  map[string]string
	Single bool
}

// Client is a table-scoped handle to the backend. Write operations return
// the affected rows and an exact count. Implementations attach whatever
// identity the handle was acquired with to every outbound call.
//
// Close releases the handle's underlying connections and must be called on
// every exit path; handles are scoped to a single request.
type Client interface {
	// Insert adds a row and returns the stored representation.
	Insert(ctx context.Context, table string, row Record) ([]Record, int, error)

	// Update mutates the row with the given identity. The identity column
	// itself is never part of the mutated set.
	Update(ctx context.Context, table string, id uuid.UUID, row Record) ([]Record, int, error)

	// Select performs a ranged fetch with an exact total count.
	Select(ctx context.Context, table string, q SelectQuery) ([]Record, int, error)

	// Delete removes the row with the given identity and reports how many
	// rows were affected. Deleting a missing identity is not an error.
	Delete(ctx context.Context, table string, id uuid.UUID) (int, error)

	// Invoke calls a named backend procedure with JSON arguments.
	Invoke(ctx context.Context, fn string, args Record) ([]Record, int, error)

	// Close releases the handle's underlying connections.
	Close() error
}

// Session is the token pair issued by the identity service. ExpiresAt is
// Unix seconds.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresAt    int64  `json:"expires_at"`
}

// AuthService is the slice of the backend that issues credentials.
type AuthService interface {
	// SignInWithPassword exchanges email/password for a token pair.
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)

	// RefreshSession exchanges a refresh token for a fresh token pair.
	RefreshSession(ctx context.Context, refreshToken string) (*Session, error)
}

// Provider acquires backend client handles. Anonymous and WithToken handles
// are scoped to one request each; Admin returns the process-wide privileged
// handle whose lifetime is the process lifetime.
type Provider interface {
	// Anonymous acquires a handle with no attached identity.
	Anonymous(ctx context.Context) (Client, error)

	// WithToken acquires a handle that attaches the given bearer token to
	// all outbound calls.
	WithToken(ctx context.Context, accessToken string) (Client, error)

	// Admin returns the process-wide service-role handle.
	Admin() Client

	// Auth returns the identity slice of the backend.
	Auth() AuthService

	// Close releases the provider's long-lived resources (the admin handle).
	Close(ctx context.Context) error
}
