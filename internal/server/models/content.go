package models

import "time"

// Content types accepted on creation.
const (
	ContentTypeYouTube  = "youtube"
	ContentTypeTwitter  = "twitter"
	ContentTypeDocument = "document"
	ContentTypeLink     = "link"
)

// IsValidContentType reports whether t is one of the known content types.
// The set is closed on purpose: the client renders only these kinds, so
// anything else is rejected at creation instead of stored and hidden.
// Matching is case-sensitive.
func IsValidContentType(t string) bool {
	switch t {
	case ContentTypeYouTube, ContentTypeTwitter, ContentTypeDocument, ContentTypeLink:
		return true
	}
	return false
}

// Content is a saved link owned by a single user.
type Content struct {
	ID        string
	UserID    string
	Title     string
	Link      string
	Type      string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time

	// OwnerUsername is filled by queries that join the owning user.
	OwnerUsername string
}
