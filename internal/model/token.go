package model

import "time"

// AuthToken represents an issued access token.
// Only the SHA-256 digest of the plaintext token is stored; the plaintext
// is returned once at login and never persisted.
type AuthToken struct {
	ID         string     `json:"id"`
	UserID     int64      `json:"user_id"`
	TokenHash  string     `json:"-"` // Never serialize
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
