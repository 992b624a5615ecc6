package rest

import (
	"time"

	"github.com/dmitrijs2005/brainly/internal/server/models"
)

type userDTO struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserDTO(u *models.User) userDTO {
	return userDTO{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

type ownerDTO struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// contentDTO keeps the "links" field name the web client reads.
type contentDTO struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Links     string    `json:"links"`
	Type      string    `json:"type"`
	Tags      []string  `json:"tags"`
	User      ownerDTO  `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toContentDTO(c *models.Content) contentDTO {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return contentDTO{
		ID:        c.ID,
		Title:     c.Title,
		Links:     c.Link,
		Type:      c.Type,
		Tags:      tags,
		User:      ownerDTO{ID: c.UserID, Username: c.OwnerUsername},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toContentDTOs(items []*models.Content) []contentDTO {
	out := make([]contentDTO, 0, len(items))
	for _, c := range items {
		out = append(out, toContentDTO(c))
	}
	return out
}
