// FILE: internal/dto/admin_dto.go
// DTOs for admin analytics, sessions and system status
package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Analytics ---

type ApplicationStatsResponse struct {
	TotalUsers                int64 `json:"totalUsers"`
	TotalHabits               int64 `json:"totalHabits"`
	TotalHabitLogs            int64 `json:"totalHabitLogs"`
	AdminCount                int64 `json:"adminCount"`
	ActiveUsersLast7Days      int64 `json:"activeUsersLast7Days"`
	ActiveUsersLast30Days     int64 `json:"activeUsersLast30Days"`
	NewRegistrationsLast7Days int64 `json:"newRegistrationsLast7Days"`
	AvgCompletionRate         int64 `json:"avgCompletionRate"`
}

type TrendPoint struct {
	Date           string `json:"date"`
	NewUsers       int64  `json:"newUsers"`
	ActiveUsers    int64  `json:"activeUsers"`
	CompletionRate int64  `json:"completionRate"`
}

type FrequencyCount struct {
	Frequency string `json:"frequency"`
	Count     int64  `json:"count"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type HabitBreakdown struct {
	ByFrequency []FrequencyCount `json:"byFrequency"`
	ByType      []TypeCount      `json:"byType"`
	ByCategory  []CategoryCount  `json:"byCategory"`
}

type StatusBreakdown struct {
	ByStatus []StatusCount `json:"byStatus"`
}

type EngagementStats struct {
	AvgHabitsPerUser      float64 `json:"avgHabitsPerUser"`
	AvgCompletionRate     int64   `json:"avgCompletionRate"`
	AvgStreakLength       float64 `json:"avgStreakLength"`
	UsersWithActiveHabits int64   `json:"usersWithActiveHabits"`
	TotalUsers            int64   `json:"totalUsers"`
}

type ContentBreakdownResponse struct {
	Habits     HabitBreakdown  `json:"habits"`
	Books      StatusBreakdown `json:"books"`
	Challenges StatusBreakdown `json:"challenges"`
	Engagement EngagementStats `json:"engagement"`
}

// --- Sessions ---

type SessionUserResponse struct {
	Id    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type SessionResponse struct {
	Id        uuid.UUID            `json:"id"`
	UserId    uuid.UUID            `json:"userId"`
	CreatedAt time.Time            `json:"createdAt"`
	ExpiresAt time.Time            `json:"expiresAt"`
	User      *SessionUserResponse `json:"user"`
}

type RevokeSessionsResponse struct {
	RevokedCount int64 `json:"revokedCount"`
}

// --- Export ---

// ExportFile is a rendered CSV document.
type ExportFile struct {
	Filename string
	Content  string
	Rows     int
}

// --- System status ---

type ApplicationInfo struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Environment string    `json:"environment"`
	GoVersion   string    `json:"goVersion"`
	StartedAt   time.Time `json:"startedAt"`
	Uptime      float64   `json:"uptimeSeconds"`
}

type MemoryInfo struct {
	HeapAllocBytes uint64 `json:"heapAllocBytes"`
	HeapSysBytes   uint64 `json:"heapSysBytes"`
	SysBytes       uint64 `json:"sysBytes"`
	NumGC          uint32 `json:"numGC"`
	Goroutines     int    `json:"goroutines"`
	Platform       string `json:"platform"`
	Arch           string `json:"arch"`
	Pid            int    `json:"pid"`
}

type DependencyHealth struct {
	Status    string  `json:"status"`
	LatencyMs float64 `json:"latencyMs"`
	Error     string  `json:"error,omitempty"`
}

type CacheStats struct {
	Backend       string `json:"backend"`
	Hits          int64  `json:"hits"`
	Misses        int64  `json:"misses"`
	Sets          int64  `json:"sets"`
	Invalidations int64  `json:"invalidations"`
}

type RequestStats struct {
	Total             int64            `json:"total"`
	Active            int64            `json:"active"`
	AvgResponseTimeMs float64          `json:"avgResponseTimeMs"`
	ByMethod          map[string]int64 `json:"byMethod"`
	ByStatus          map[string]int64 `json:"byStatus"`
}

type SystemStatsResponse struct {
	Application  ApplicationInfo             `json:"application"`
	Memory       MemoryInfo                  `json:"memory"`
	Dependencies map[string]DependencyHealth `json:"dependencies"`
	FeatureCache CacheStats                  `json:"featureCache"`
	Requests     RequestStats                `json:"requests"`
}
