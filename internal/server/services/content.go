package services

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/brainly/internal/common"
	"github.com/dmitrijs2005/brainly/internal/server/models"
	"github.com/dmitrijs2005/brainly/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const msgContentNotFound = "Content not found or not authorized"

// ContentInput is the user-supplied part of a new content item.
type ContentInput struct {
	Title string
	Link  string
	Type  string
	Tags  []string
}

// ContentService manages a user's saved links. Every operation is scoped to
// the calling user.
type ContentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewContentService(db *sql.DB, m repomanager.RepositoryManager) *ContentService {
	return &ContentService{db: db, repomanager: m}
}

// Create validates in and stores it for userID.
func (s *ContentService) Create(ctx context.Context, userID string, in ContentInput) (*models.Content, error) {
	title := strings.TrimSpace(in.Title)
	link := strings.TrimSpace(in.Link)
	typ := strings.TrimSpace(in.Type)

	if title == "" || link == "" || typ == "" {
		return nil, common.Validation("Title, link, and type are required")
	}
	if !models.IsValidContentType(typ) {
		return nil, common.Validation("Invalid content type")
	}

	tags := make([]string, 0, len(in.Tags))
	for _, t := range in.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	c, err := s.repomanager.Contents(s.db).Create(ctx, &models.Content{
		UserID: userID,
		Title:  title,
		Link:   link,
		Type:   typ,
		Tags:   tags,
	})
	if err != nil {
		return nil, common.Internal("Something went wrong while creating content", err)
	}
	return c, nil
}

// Find returns all of userID's content, newest first.
func (s *ContentService) Find(ctx context.Context, userID string) ([]*models.Content, error) {
	items, err := s.repomanager.Contents(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, common.Internal("Something went wrong while fetching content", err)
	}
	return items, nil
}

// Delete removes content id if userID owns it. Unknown, foreign and
// malformed ids are indistinguishable to the caller.
func (s *ContentService) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.NotFound(http.StatusNotFound, msgContentNotFound)
	}

	err := s.repomanager.Contents(s.db).DeleteOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.NotFound(http.StatusNotFound, msgContentNotFound)
		}
		return common.Internal("Something went wrong while deleting content", err)
	}
	return nil
}
