package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gastrobase/recipe-api/internal/service/auth"
	"github.com/gastrobase/recipe-api/internal/store"
)

// authService issues token pairs locally. Passwords verify against the
// accounts table and both tokens are signed in process, so the refresh
// exchange is a decode-and-remint rather than a backend session lookup.
type authService struct {
	db       *sql.DB
	verifier *auth.TokenVerifier
	password auth.PasswordVerifier
	refresh  time.Duration
	log      *slog.Logger
}

var _ store.AuthService = (*authService)(nil)

// SignInWithPassword exchanges email/password for a token pair. An unknown
// email and a wrong password are indistinguishable to the caller.
func (a *authService) SignInWithPassword(ctx context.Context, email, password string) (*store.Session, error) {
	var (
		userID uuid.UUID
		hash   string
	)
	err := a.db.QueryRowContext(ctx,
		"SELECT id, hashed_password FROM accounts WHERE email = $1", email,
	).Scan(&userID, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			a.log.Debug("sign-in rejected, unknown email")
			return nil, store.ErrInvalidCredentials
		}
		return nil, mapError(err)
	}

	if err := a.password.Compare(hash, password); err != nil {
		a.log.Debug("sign-in rejected, password mismatch",
			slog.String("user_id", userID.String()))
		return nil, store.ErrInvalidCredentials
	}
	return a.mint(userID, email)
}

// RefreshSession exchanges a refresh token for a fresh token pair.
func (a *authService) RefreshSession(ctx context.Context, refreshToken string) (*store.Session, error) {
	payload, err := a.verifier.Decode(refreshToken)
	if err != nil {
		a.log.Debug("refresh rejected", slog.String("reason", err.Error()))
		return nil, store.ErrInvalidCredentials
	}

	// The account must still exist; deleted users keep no working refresh
	// grant even before their token expires.
	var exists bool
	err = a.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)", payload.Subject,
	).Scan(&exists)
	if err != nil {
		return nil, mapError(err)
	}
	if !exists {
		return nil, store.ErrInvalidCredentials
	}
	return a.mint(payload.Subject, payload.Email)
}

func (a *authService) mint(userID uuid.UUID, email string) (*store.Session, error) {
	access, refresh, expiresAt, err := a.verifier.Mint(userID, email, a.refresh)
	if err != nil {
		return nil, fmt.Errorf("failed to mint token pair: %w", err)
	}
	return &store.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresAt:    expiresAt,
	}, nil
}
