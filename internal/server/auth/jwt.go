// Package auth implements password hashing, JWT issuance and verification,
// access-token revocation and the authenticated identity carried on a
// request context.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/brainly/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenConfig carries the secrets and lifetimes used by TokenIssuer.
type TokenConfig struct {
	AccessSecret  string
	AccessExpiry  time.Duration
	RefreshSecret string
	RefreshExpiry time.Duration
}

// AccessClaims is the claim set of an access token.
type AccessClaims struct {
	UserID   string `json:"_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// RefreshClaims is the claim set of a refresh token.
type RefreshClaims struct {
	UserID string `json:"_id"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies HS256 tokens. Access and refresh tokens
// are signed with separate secrets.
type TokenIssuer struct {
	accessSecret  []byte
	accessExpiry  time.Duration
	refreshSecret []byte
	refreshExpiry time.Duration
	now           func() time.Time
}

// NewTokenIssuer validates cfg and returns a ready issuer. A missing secret
// or non-positive expiry is a configuration error.
func NewTokenIssuer(cfg TokenConfig) (*TokenIssuer, error) {
	switch {
	case cfg.AccessSecret == "":
		return nil, common.Configuration("access token secret is not set")
	case cfg.AccessExpiry <= 0:
		return nil, common.Configuration("access token expiry is not set")
	case cfg.RefreshSecret == "":
		return nil, common.Configuration("refresh token secret is not set")
	case cfg.RefreshExpiry <= 0:
		return nil, common.Configuration("refresh token expiry is not set")
	}

	return &TokenIssuer{
		accessSecret:  []byte(cfg.AccessSecret),
		accessExpiry:  cfg.AccessExpiry,
		refreshSecret: []byte(cfg.RefreshSecret),
		refreshExpiry: cfg.RefreshExpiry,
		now:           time.Now,
	}, nil
}

func (t *TokenIssuer) registered(validity time.Duration) jwt.RegisteredClaims {
	now := t.now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
	}
}

// IssueAccessToken signs {_id, username, jti, iat, exp} with the access secret.
func (t *TokenIssuer) IssueAccessToken(userID, username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		UserID:           userID,
		Username:         username,
		RegisteredClaims: t.registered(t.accessExpiry),
	})
	return token.SignedString(t.accessSecret)
}

// IssueRefreshToken signs {_id, jti, iat, exp} with the refresh secret.
func (t *TokenIssuer) IssueRefreshToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, RefreshClaims{
		UserID:           userID,
		RegisteredClaims: t.registered(t.refreshExpiry),
	})
	return token.SignedString(t.refreshSecret)
}

// ParseAccessToken verifies signature and expiry and returns the claims.
// Errors wrap common.ErrTokenExpired or common.ErrInvalidToken together
// with the parser's own reason.
func (t *TokenIssuer) ParseAccessToken(raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.accessSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", common.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing _id claim", common.ErrInvalidToken)
	}

	return claims, nil
}
