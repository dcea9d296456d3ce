// Package auth implements the authentication gate: bearer token
// verification, principal resolution, scoped backend client acquisition,
// and the login/refresh delegations to the backend identity service.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gastrobase/recipe-api/internal/config"
)

// TokenAudience is the audience claim the backend stamps on access tokens.
const TokenAudience = "authenticated"

// TokenPayload is the verified content of a bearer token.
type TokenPayload struct {
	Subject   uuid.UUID
	Email     string
	Role      string
	SessionID string
	ExpiresAt time.Time
}

// tokenClaims is the wire-level claims structure.
type tokenClaims struct {
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier decodes and verifies HMAC-signed bearer tokens.
type TokenVerifier struct {
	signingKey []byte
	method     jwt.SigningMethod
	lifetime   time.Duration
	timeFunc   func() time.Time // injectable for testing
}

// NewTokenVerifier builds a verifier from the auth configuration.
func NewTokenVerifier(cfg config.AuthConfig) (*TokenVerifier, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	method := jwt.GetSigningMethod(cfg.Algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", cfg.Algorithm)
	}

	return &TokenVerifier{
		signingKey: []byte(cfg.JWTSecret),
		method:     method,
		lifetime:   time.Duration(cfg.ExpirationSeconds) * time.Second,
		timeFunc:   time.Now,
	}, nil
}

// Decode validates the token's signature, audience, and time claims, and
// returns the verified payload. Expiry surfaces as ErrExpiredToken so
// callers can treat it separately from structural failures.
func (v *TokenVerifier) Decode(tokenString string) (*TokenPayload, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	now := v.timeFunc()
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{v.method.Alg()}),
		jwt.WithAudience(TokenAudience),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.signingKey, nil
		},
		parserOpts...)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenInvalidAudience):
			return nil, ErrWrongAudience
		default:
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	payload := &TokenPayload{
		Subject:   subject,
		Email:     claims.Email,
		Role:      claims.Role,
		SessionID: claims.SessionID,
	}
	if claims.ExpiresAt != nil {
		payload.ExpiresAt = claims.ExpiresAt.Time
	}
	return payload, nil
}

// Mint signs a fresh access/refresh token pair for the given subject. This
// is only used by the self-hosted backend adapter; the hosted backend mints
// its own tokens.
func (v *TokenVerifier) Mint(subject uuid.UUID, email string, refreshLifetime time.Duration) (access, refresh string, expiresAt int64, err error) {
	now := v.timeFunc()
	exp := now.Add(v.lifetime)

	accessClaims := tokenClaims{
		Email: email,
		Role:  TokenAudience,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			Audience:  jwt.ClaimStrings{TokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.New().String(),
		},
	}
	access, err = jwt.NewWithClaims(v.method, accessClaims).SignedString(v.signingKey)
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshClaims := jwt.RegisteredClaims{
		Subject:   subject.String(),
		Audience:  jwt.ClaimStrings{TokenAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(refreshLifetime)),
		ID:        uuid.New().String(),
	}
	refresh, err = jwt.NewWithClaims(v.method, refreshClaims).SignedString(v.signingKey)
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return access, refresh, exp.Unix(), nil
}
