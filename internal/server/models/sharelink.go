package models

import "time"

// ShareLink maps a public hash to the user whose content it exposes.
// Each user has at most one.
type ShareLink struct {
	ID        string
	Hash      string
	UserID    string
	CreatedAt time.Time
}
