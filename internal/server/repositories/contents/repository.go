package contents

import (
	"context"

	"github.com/dmitrijs2005/brainly/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, content *models.Content) (*models.Content, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Content, error)
	DeleteOwned(ctx context.Context, id string, userID string) error
}
