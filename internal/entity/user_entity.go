// FILE: internal/entity/user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID
	Name         string
	Email        string
	PasswordHash *string
	IsAdmin      bool
	Timezone     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserCounts holds related record counts for a user.
type UserCounts struct {
	Habits     int64
	HabitLogs  int64
	Milestones int64
	Books      int64
	Challenges int64
}

// UserSummary is a user row plus the counts shown in admin listings.
type UserSummary struct {
	User
	HabitCount    int64
	HabitLogCount int64
}
