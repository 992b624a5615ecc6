// Package sharelinks provides the PostgreSQL-backed share link store.
// The table carries UNIQUE(user_id) and UNIQUE(hash); callers rely on
// those constraints rather than on lookups for at-most-one-link-per-user.
package sharelinks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/brainly/internal/common"
	"github.com/dmitrijs2005/brainly/internal/dbx"
	"github.com/dmitrijs2005/brainly/internal/server/models"
)

// HashConstraint is the unique constraint on share_links.hash.
const HashConstraint = "share_links_hash_key"

// ErrHashCollision is returned by Create when the generated hash is taken.
var ErrHashCollision = errors.New("share hash collision")

// PostgresRepository implements share link storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a link for userID. If the user already has one the insert
// is skipped and common.ErrorAlreadyExists is returned; a taken hash yields
// ErrHashCollision.
func (r *PostgresRepository) Create(ctx context.Context, userID string, hash string) (*models.ShareLink, error) {
	query :=
		`INSERT INTO share_links (hash, user_id)
         VALUES ($1, $2)
		 ON CONFLICT (user_id) DO NOTHING
		 RETURNING id, hash, user_id, created_at
		 `

	link := &models.ShareLink{}
	err := r.db.QueryRowContext(ctx, query, hash, userID).
		Scan(&link.ID, &link.Hash, &link.UserID, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorAlreadyExists
		}
		if constraint, ok := dbx.UniqueViolation(err); ok && constraint == HashConstraint {
			return nil, ErrHashCollision
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return link, nil
}

// GetByUserID returns the user's link or common.ErrorNotFound.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.ShareLink, error) {
	query :=
		`SELECT id, hash, user_id, created_at FROM share_links
		 WHERE user_id = $1
		 `
	return r.getOne(ctx, query, userID)
}

// GetByHash returns the link with the given hash or common.ErrorNotFound.
func (r *PostgresRepository) GetByHash(ctx context.Context, hash string) (*models.ShareLink, error) {
	query :=
		`SELECT id, hash, user_id, created_at FROM share_links
		 WHERE hash = $1
		 `
	return r.getOne(ctx, query, hash)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg string) (*models.ShareLink, error) {
	link := &models.ShareLink{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&link.ID, &link.Hash, &link.UserID, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return link, nil
}

// DeleteByUserID removes the user's link. Deleting a missing link is not an error.
func (r *PostgresRepository) DeleteByUserID(ctx context.Context, userID string) error {
	query :=
		`DELETE FROM share_links
		 WHERE user_id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
