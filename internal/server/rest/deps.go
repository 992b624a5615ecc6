package rest

import (
	"context"

	"github.com/dmitrijs2005/brainly/internal/server/auth"
	"github.com/dmitrijs2005/brainly/internal/server/models"
	"github.com/dmitrijs2005/brainly/internal/server/services"
)

// UserService is the account logic behind /users.
type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.LoginResult, error)
	Logout(ctx context.Context, id auth.Identity) error
	GetPublicByID(ctx context.Context, id string) (*models.User, error)
}

// ContentService is the per-user content logic behind /contents.
type ContentService interface {
	Create(ctx context.Context, userID string, in services.ContentInput) (*models.Content, error)
	Find(ctx context.Context, userID string) ([]*models.Content, error)
	Delete(ctx context.Context, userID, id string) error
}

// ShareService is the share link registry.
type ShareService interface {
	Toggle(ctx context.Context, userID string, share bool) (string, error)
	Resolve(ctx context.Context, hash string) (*services.SharedBrain, error)
}

// ExportService uploads a user's content and returns a download link.
type ExportService interface {
	Export(ctx context.Context, userID string) (*services.ExportResult, error)
}

// TokenVerifier validates access tokens.
type TokenVerifier interface {
	ParseAccessToken(raw string) (*auth.AccessClaims, error)
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function such as (*sql.DB).PingContext to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Deps bundles everything the HTTP layer calls into. Exports and Cache are
// optional.
type Deps struct {
	Users    UserService
	Contents ContentService
	Shares   ShareService
	Exports  ExportService
	Tokens   TokenVerifier
	Revoker  auth.Revoker
	DB       Pinger
	Cache    Pinger
}
