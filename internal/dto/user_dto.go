// FILE: internal/dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserListParams is the raw query of the admin users listing.
type UserListParams struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

type UserCountResponse struct {
	Habits     int64  `json:"habits"`
	HabitLogs  int64  `json:"habitLogs"`
	Milestones *int64 `json:"milestones,omitempty"`
	Books      *int64 `json:"books,omitempty"`
	Challenges *int64 `json:"challenges,omitempty"`
}

type UserSummaryResponse struct {
	Id        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	IsAdmin   bool              `json:"isAdmin"`
	Timezone  string            `json:"timezone"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Count     UserCountResponse `json:"_count"`
}

type UserListResult struct {
	Users []*UserSummaryResponse
	Total int64
	Page  int
	Limit int
}

type UpdateUserRoleRequest struct {
	IsAdmin *bool `json:"isAdmin" validate:"required"`
}

type UserRoleResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

type HabitSummaryResponse struct {
	Id               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Color            string    `json:"color"`
	Frequency        string    `json:"frequency"`
	HabitType        string    `json:"habitType"`
	Category         *string   `json:"category"`
	IsActive         bool      `json:"isActive"`
	IsArchived       bool      `json:"isArchived"`
	CurrentStreak    int       `json:"currentStreak"`
	LongestStreak    int       `json:"longestStreak"`
	TotalCompletions int       `json:"totalCompletions"`
	CreatedAt        time.Time `json:"createdAt"`
}

type BookSummaryResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    *string   `json:"author"`
	Status    string    `json:"status"`
	Rating    *int      `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChallengeSummaryResponse struct {
	Id             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	Duration       int       `json:"duration"`
	CompletionRate float64   `json:"completionRate"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	CreatedAt      time.Time `json:"createdAt"`
}

type UserDetailResponse struct {
	UserSummaryResponse
	Habits     []*HabitSummaryResponse     `json:"habits"`
	Books      []*BookSummaryResponse      `json:"books"`
	Challenges []*ChallengeSummaryResponse `json:"challenges"`
}
