// Package contents provides PostgreSQL-backed storage for saved links.
// Queries are built with squirrel using $n placeholders.
package contents

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/brainly/internal/common"
	"github.com/dmitrijs2005/brainly/internal/dbx"
	"github.com/dmitrijs2005/brainly/internal/server/models"
)

// PostgresRepository implements content storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) qb() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// Create inserts content and fills its ID and timestamps.
func (r *PostgresRepository) Create(ctx context.Context, content *models.Content) (*models.Content, error) {
	tags := content.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}

	query, args, err := r.qb().Insert("contents").
		Columns("user_id", "title", "link", "type", "tags").
		Values(content.UserID, content.Title, content.Link, content.Type, string(tagsJSON)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&content.ID, &content.CreatedAt, &content.UpdatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	content.Tags = tags
	return content, nil
}

// ListByUser returns userID's content, newest first, with the owner's
// username joined in.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Content, error) {
	query, args, err := r.qb().
		Select("c.id", "c.user_id", "c.title", "c.link", "c.type", "c.tags", "c.created_at", "c.updated_at", "u.username").
		From("contents c").
		Join("users u ON u.id = c.user_id").
		Where(sq.Eq{"c.user_id": userID}).
		OrderBy("c.created_at DESC", "c.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Content, 0)
	for rows.Next() {
		var (
			item     models.Content
			tagsJSON []byte
		)
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Title, &item.Link, &item.Type, &tagsJSON,
			&item.CreatedAt, &item.UpdatedAt, &item.OwnerUsername,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		item.Tags = []string{}
		if len(tagsJSON) > 0 {
			if err := json.Unmarshal(tagsJSON, &item.Tags); err != nil {
				return nil, fmt.Errorf("decode tags for %s: %w", item.ID, err)
			}
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// DeleteOwned removes content id only if it belongs to userID. Missing or
// foreign content yields common.ErrorNotFound.
func (r *PostgresRepository) DeleteOwned(ctx context.Context, id string, userID string) error {
	query, args, err := r.qb().Delete("contents").
		Where(sq.And{sq.Eq{"id": id}, sq.Eq{"user_id": userID}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
