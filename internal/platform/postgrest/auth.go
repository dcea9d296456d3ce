package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gastrobase/recipe-api/internal/store"
)

const authTokenPath = "/auth/v1/token"

// authService exchanges credentials against the identity plane.
type authService struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *slog.Logger
}

var _ store.AuthService = (*authService)(nil)

// tokenResponse is the identity-plane session payload. ExpiresAt is absent
// on older deployments, in which case it is derived from ExpiresIn.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
}

// SignInWithPassword exchanges email/password for a token pair.
func (a *authService) SignInWithPassword(ctx context.Context, email, password string) (*store.Session, error) {
	body := map[string]string{"email": email, "password": password}
	return a.exchange(ctx, "password", body)
}

// RefreshSession exchanges a refresh token for a fresh token pair.
func (a *authService) RefreshSession(ctx context.Context, refreshToken string) (*store.Session, error) {
	body := map[string]string{"refresh_token": refreshToken}
	return a.exchange(ctx, "refresh_token", body)
}

func (a *authService) exchange(ctx context.Context, grantType string, body map[string]string) (*store.Session, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode token request: %w", err)
	}

	u := a.baseURL + authTokenPath + "?grant_type=" + grantType
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set(headerAPIKey, a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrBackend, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Identity-plane rejections are uniform regardless of whether the
		// account exists, the password is wrong, or the grant is stale.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			a.log.Debug("token exchange rejected",
				slog.String("grant_type", grantType),
				slog.Int("status", resp.StatusCode))
			return nil, store.ErrInvalidCredentials
		}
		return nil, decodeAPIError(resp)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, fmt.Errorf("%w: malformed token response: %v", store.ErrBackend, err)
	}

	expiresAt := tok.ExpiresAt
	if expiresAt == 0 {
		expiresAt = time.Now().Unix() + tok.ExpiresIn
	}
	return &store.Session{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		ExpiresAt:    expiresAt,
	}, nil
}
