// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. Password holds the bcrypt hash; it and
// RefreshToken are never populated on public reads.
type User struct {
	ID           string
	Username     string
	Password     string
	RefreshToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public returns a copy of u without credential fields.
func (u *User) Public() *User {
	return &User{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
