package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is one refresh token grant. Tokens are stored hashed; the raw
// value only ever travels to the client.
type Session struct {
	ID        uuid.UUID  `json:"id" db:"session_id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	TokenHash string     `json:"-" db:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty" db:"revoked_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

func (s *Session) IsValid() bool {
	return s.RevokedAt == nil && time.Now().Before(s.ExpiresAt)
}
