// FILE: internal/entity/session_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a refresh token grant.
type Session struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time

	// Populated by queries that preload the owner.
	User *User
}

func (s *Session) IsActive(now time.Time) bool {
	return s.ExpiresAt.After(now)
}
