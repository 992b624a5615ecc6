package sharelinks

import (
	"context"

	"github.com/dmitrijs2005/brainly/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, hash string) (*models.ShareLink, error)
	GetByUserID(ctx context.Context, userID string) (*models.ShareLink, error)
	GetByHash(ctx context.Context, hash string) (*models.ShareLink, error)
	DeleteByUserID(ctx context.Context, userID string) error
}
