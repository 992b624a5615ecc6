package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/brainly/internal/common"
	"github.com/dmitrijs2005/brainly/internal/logging"
	"github.com/dmitrijs2005/brainly/internal/server/auth"
	"github.com/dmitrijs2005/brainly/internal/server/models"
)

const (
	msgNoToken      = "Unauthorized request - No token provided"
	msgTokenRevoked = "Access token has been revoked"
	msgUserNotFound = "Invalid Access Token - User not found"
)

// UserResolver loads the public projection of a user.
type UserResolver interface {
	GetPublicByID(ctx context.Context, id string) (*models.User, error)
}

// Verifier authenticates requests from the accessToken cookie or a Bearer
// header and attaches the resulting auth.Identity to the request context.
type Verifier struct {
	tokens  TokenVerifier
	users   UserResolver
	revoker auth.Revoker
	logger  logging.Logger
}

func NewVerifier(t TokenVerifier, u UserResolver, r auth.Revoker, l logging.Logger) *Verifier {
	if r == nil {
		r = auth.NopRevoker{}
	}
	if l == nil {
		l = logging.Nop()
	}
	return &Verifier{tokens: t, users: u, revoker: r, logger: l.With("module", "verifier")}
}

// extractToken prefers a non-empty accessToken cookie over the
// Authorization header.
func extractToken(r *http.Request) string {
	if c, err := r.Cookie(common.AccessTokenCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Authenticate runs extract, verify, revocation check and user lookup.
// Every failure is a *common.Error.
func (v *Verifier) Authenticate(r *http.Request) (auth.Identity, error) {
	ctx := r.Context()

	raw := extractToken(r)
	if raw == "" {
		return auth.Identity{}, common.Unauthenticated(msgNoToken, nil)
	}

	claims, err := v.tokens.ParseAccessToken(raw)
	if err != nil {
		return auth.Identity{}, common.Unauthenticated(err.Error(), err)
	}

	revoked, err := v.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		v.logger.Warn(ctx, "revocation check failed", "error", err)
	} else if revoked {
		return auth.Identity{}, common.Unauthenticated(msgTokenRevoked, common.ErrTokenRevoked)
	}

	user, err := v.users.GetPublicByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return auth.Identity{}, common.Unauthenticated(msgUserNotFound, err)
		}
		return auth.Identity{}, common.Internal("Internal server error", err)
	}

	id := auth.Identity{UserID: user.ID, Username: user.Username, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

// Require wraps next so it only runs for authenticated requests.
func (v *Verifier) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := v.Authenticate(r)
		if err != nil {
			writeError(w, r, v.logger, err)
			return
		}
		next(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
	}
}
