package services

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/brainly/internal/common"
	"github.com/dmitrijs2005/brainly/internal/logging"
	"github.com/dmitrijs2005/brainly/internal/server/models"
	"github.com/dmitrijs2005/brainly/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/brainly/internal/server/repositories/sharelinks"
)

// maxHashAttempts bounds retries after a share hash collision.
const maxHashAttempts = 5

// SharedBrain is what a share link exposes publicly.
type SharedBrain struct {
	Username string
	Contents []*models.Content
}

// ShareService owns the per-user public share link.
type ShareService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	newHash     func() (string, error)
	logger      logging.Logger
}

func NewShareService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *ShareService {
	if l == nil {
		l = logging.Nop()
	}
	return &ShareService{
		db:          db,
		repomanager: m,
		newHash:     common.NewShareHash,
		logger:      l.With("module", "share_service"),
	}
}

// Toggle enables (share=true) or disables the user's share link. Enabling
// returns the current hash, creating one if needed; disabling returns "".
func (s *ShareService) Toggle(ctx context.Context, userID string, share bool) (string, error) {
	if !share {
		if err := s.repomanager.ShareLinks(s.db).DeleteByUserID(ctx, userID); err != nil {
			return "", common.Internal("Something went wrong while removing the link", err)
		}
		return "", nil
	}
	return s.enable(ctx, userID)
}

func (s *ShareService) enable(ctx context.Context, userID string) (string, error) {
	repo := s.repomanager.ShareLinks(s.db)

	link, err := repo.GetByUserID(ctx, userID)
	if err == nil {
		return link.Hash, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", common.Internal("Something went wrong while creating the link", err)
	}

	for attempt := 1; attempt <= maxHashAttempts; attempt++ {
		hash, err := s.newHash()
		if err != nil {
			return "", common.Internal("Something went wrong while creating the link", err)
		}

		link, err := repo.Create(ctx, userID, hash)
		switch {
		case err == nil:
			return link.Hash, nil
		case errors.Is(err, common.ErrorAlreadyExists):
			// a concurrent request created it first
			existing, err := repo.GetByUserID(ctx, userID)
			if err != nil {
				return "", common.Internal("Something went wrong while creating the link", err)
			}
			return existing.Hash, nil
		case errors.Is(err, sharelinks.ErrHashCollision):
			s.logger.Warn(ctx, "share hash collision", "attempt", attempt)
		default:
			return "", common.Internal("Something went wrong while creating the link", err)
		}
	}

	return "", common.Internal("Something went wrong while creating the link", sharelinks.ErrHashCollision)
}

// Resolve returns the owner and content behind a public hash. This path
// performs no authentication.
func (s *ShareService) Resolve(ctx context.Context, hash string) (*SharedBrain, error) {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return nil, common.NotFound(http.StatusLengthRequired, "Sorry Incorrect Input")
	}

	link, err := s.repomanager.ShareLinks(s.db).GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NotFound(http.StatusLengthRequired, "Sorry Incorrect Input")
		}
		return nil, common.Internal("Something went wrong while resolving the link", err)
	}

	owner, err := s.repomanager.Users(s.db).GetPublicByID(ctx, link.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NotFound(http.StatusLengthRequired, "User not found,should not happen")
		}
		return nil, common.Internal("Something went wrong while resolving the link", err)
	}

	items, err := s.repomanager.Contents(s.db).ListByUser(ctx, owner.ID)
	if err != nil {
		return nil, common.Internal("Something went wrong while resolving the link", err)
	}

	return &SharedBrain{Username: owner.Username, Contents: items}, nil
}
