// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, logout and issuing the
// access/refresh JWT pair.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/brainly/internal/common"
	"github.com/dmitrijs2005/brainly/internal/dbx"
	"github.com/dmitrijs2005/brainly/internal/logging"
	"github.com/dmitrijs2005/brainly/internal/server/auth"
	"github.com/dmitrijs2005/brainly/internal/server/models"
	"github.com/dmitrijs2005/brainly/internal/server/repositories/repomanager"
)

const (
	msgTokenGeneration = "Something went wrong while generating access and refresh tokens"
	msgLoginFailed     = "Something went wrong while logging in"
)

// txRunner runs fn inside a single unit of work.
type txRunner func(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error

// PasswordHasher hashes and checks user passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer mints the access/refresh pair handed out at login.
type TokenIssuer interface {
	IssueAccessToken(userID, username string) (string, error)
	IssueRefreshToken(userID string) (string, error)
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	User   *models.User
	Tokens TokenPair
}

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials, mint tokens and store the refresh token
// - Logout: clear the refresh token and revoke the access token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer
	revoker     auth.Revoker
	logger      logging.Logger
	inTx        txRunner
}

// NewUserService constructs a UserService. A nil revoker disables revocation.
// Login runs in a transaction on db.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, h PasswordHasher, t TokenIssuer,
	r auth.Revoker, l logging.Logger) *UserService {
	if r == nil {
		r = auth.NopRevoker{}
	}
	if l == nil {
		l = logging.Nop()
	}
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      h,
		tokens:      t,
		revoker:     r,
		logger:      l.With("module", "user_service"),
		inTx:        newTxRunner(db),
	}
}

// newTxRunner wraps dbx.WithTx around db. Without a database the work runs
// directly with a nil handle, which repository managers that keep their own
// storage (the in-memory one) ignore.
func newTxRunner(db *sql.DB) txRunner {
	if db == nil {
		return func(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
			return fn(ctx, nil)
		}
	}
	return func(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
		return dbx.WithTx(ctx, db, nil, fn)
	}
}

func normalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Register creates a user and returns its public projection.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = normalizeUsername(username)
	if username == "" || password == "" {
		return nil, common.Validation("All fields are required")
	}
	if len(password) > auth.MaxPasswordBytes {
		return nil, common.Validation("Password is too long")
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, common.Validation("User already exists")
	case !errors.Is(err, common.ErrorNotFound):
		return nil, common.Internal("Something went wrong while registering the user", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.Internal("Something went wrong while registering the user", err)
	}

	u, err := repo.Create(ctx, &models.User{Username: username, Password: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.Validation("User already exists")
		}
		return nil, common.Internal("Something went wrong while registering the user", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return u.Public(), nil
}

// Login verifies credentials and, on success, issues a token pair and
// stores the refresh token on the user record.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = normalizeUsername(username)
	if username == "" || password == "" {
		return nil, common.Validation("Username and password are required")
	}

	// The lookup and the refresh token write share one transaction.
	var res *LoginResult
	err := s.inTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		user, err := repo.GetByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.Validation("User does not exist!")
			}
			return common.Internal(msgLoginFailed, err)
		}

		if !s.hasher.Verify(password, user.Password) {
			return common.Unauthenticated("Invalid credentials", common.ErrorUnauthorized)
		}

		pair, err := s.generateTokenPair(user)
		if err != nil {
			return common.Internal(msgTokenGeneration, err)
		}
		if err := repo.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
			return common.Internal(msgTokenGeneration, err)
		}

		res = &LoginResult{User: user.Public(), Tokens: *pair}
		return nil
	})
	if err != nil {
		if _, ok := common.AsError(err); ok {
			return nil, err
		}
		s.logger.Error(ctx, "login transaction failed", "error", err)
		return nil, common.Internal(msgLoginFailed, err)
	}
	return res, nil
}

// Logout clears the stored refresh token and revokes the caller's access
// token until it expires.
func (s *UserService) Logout(ctx context.Context, id auth.Identity) error {
	repo := s.repomanager.Users(s.db)
	if err := repo.SetRefreshToken(ctx, id.UserID, ""); err != nil && !errors.Is(err, common.ErrorNotFound) {
		return common.Internal("Something went wrong while logging out", err)
	}
	if err := s.revoker.Revoke(ctx, id.TokenID, id.ExpiresAt); err != nil {
		return common.Internal("Something went wrong while logging out", err)
	}
	return nil
}

// GetPublicByID returns the user without credentials. A missing user yields
// common.ErrorNotFound unchanged so callers can pick their own response.
func (s *UserService) GetPublicByID(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetPublicByID(ctx, id)
}

func (s *UserService) generateTokenPair(user *models.User) (*TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
