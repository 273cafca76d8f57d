// Package model defines domain entities for the application.
package model

import "time"

// Field length limits from the users schema.
const (
	MaxEmailLength     = 254
	MaxUsernameLength  = 150
	MaxFirstNameLength = 150
	MaxLastNameLength  = 150
	MaxPasswordLength  = 150
)

// User represents a registered account.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"` // Never serialize
	CreatedAt    time.Time `json:"created_at"`
}

// AuthContext holds authenticated request context.
// This is injected into the request context by auth middleware.
// TokenHash is the digest the token is cached under; logout uses it to
// drop the cache entry.
type AuthContext struct {
	TokenID   string
	TokenHash string
	UserID    int64
	Username  string
	Email     string
}
