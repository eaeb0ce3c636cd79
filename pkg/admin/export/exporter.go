package export

import (
	"context"
	"fmt"
	"time"

	"habit-tracker-be/internal/pkg/apperror"
	"habit-tracker-be/internal/repository/specification"
	"habit-tracker-be/internal/repository/unitofwork"
)

const (
	TypeUsers  = "users"
	TypeHabits = "habits"
	TypeLogs   = "logs"

	DefaultLogLimit = 10000
	logDateLayout   = "2006-01-02"
)

// Table is an export before CSV rendering
type Table struct {
	Headers []string
	Rows    [][]any
}

// ValidateType rejects anything but users, habits and logs
func ValidateType(exportType string) error {
	switch exportType {
	case TypeUsers, TypeHabits, TypeLogs:
		return nil
	}
	return apperror.NewValidation(fmt.Sprintf("Invalid export type '%s'", exportType)).
		WithDetails(map[string]interface{}{"allowed": []string{TypeUsers, TypeHabits, TypeLogs}})
}

// Filename returns "<type>-export-<unixMillis>.csv"
func Filename(exportType string, now time.Time) string {
	return fmt.Sprintf("%s-export-%d.csv", exportType, now.UnixMilli())
}

// Exporter builds export tables from storage
type Exporter struct {
	logLimit int
}

// NewExporter creates an exporter. A non-positive limit falls back to DefaultLogLimit.
func NewExporter(logLimit int) *Exporter {
	if logLimit <= 0 {
		logLimit = DefaultLogLimit
	}
	return &Exporter{logLimit: logLimit}
}

// Export validates the type before touching storage
func (e *Exporter) Export(ctx context.Context, uow unitofwork.UnitOfWork, exportType string) (*Table, error) {
	if err := ValidateType(exportType); err != nil {
		return nil, err
	}

	switch exportType {
	case TypeUsers:
		return e.users(ctx, uow)
	case TypeHabits:
		return e.habits(ctx, uow)
	default:
		return e.logs(ctx, uow)
	}
}

func (e *Exporter) users(ctx context.Context, uow unitofwork.UnitOfWork) (*Table, error) {
	users, err := uow.UserRepository().FindSummaries(ctx, specification.OrderBy{Field: "users.created_at", Desc: true})
	if err != nil {
		return nil, fmt.Errorf("export users: %w", err)
	}

	t := &Table{
		Headers: []string{"ID", "Name", "Email", "Admin", "Timezone", "Created", "Habits", "Logs"},
		Rows:    make([][]any, 0, len(users)),
	}
	for _, u := range users {
		t.Rows = append(t.Rows, []any{u.Id, u.Name, u.Email, u.IsAdmin, u.Timezone, u.CreatedAt, u.HabitCount, u.HabitLogCount})
	}
	return t, nil
}

func (e *Exporter) habits(ctx context.Context, uow unitofwork.UnitOfWork) (*Table, error) {
	habits, err := uow.HabitRepository().FindAllWithOwner(ctx, specification.OrderBy{Field: "habits.created_at", Desc: true})
	if err != nil {
		return nil, fmt.Errorf("export habits: %w", err)
	}

	t := &Table{
		Headers: []string{"ID", "Name", "User", "Email", "Frequency", "Type", "Category", "Active", "Archived", "Current Streak", "Longest Streak", "Total Completions", "Created"},
		Rows:    make([][]any, 0, len(habits)),
	}
	for _, h := range habits {
		t.Rows = append(t.Rows, []any{
			h.Id, h.Name, h.UserName, h.UserEmail, string(h.Frequency), h.HabitType, h.Category,
			h.IsActive, h.IsArchived, h.CurrentStreak, h.LongestStreak, h.TotalCompletions, h.CreatedAt,
		})
	}
	return t, nil
}

func (e *Exporter) logs(ctx context.Context, uow unitofwork.UnitOfWork) (*Table, error) {
	logs, err := uow.HabitLogRepository().FindAllWithOwner(ctx,
		specification.OrderBy{Field: "habit_logs.date", Desc: true},
		specification.OrderBy{Field: "habit_logs.created_at", Desc: true},
		specification.Limit{N: e.logLimit},
	)
	if err != nil {
		return nil, fmt.Errorf("export logs: %w", err)
	}

	t := &Table{
		Headers: []string{"ID", "Date", "Habit", "User", "Email", "Completed", "Value", "Notes", "Created"},
		Rows:    make([][]any, 0, len(logs)),
	}
	for _, l := range logs {
		t.Rows = append(t.Rows, []any{
			l.Id, l.Date.UTC().Format(logDateLayout), l.HabitName, l.UserName, l.UserEmail,
			l.Completed, l.Value, l.Notes, l.CreatedAt,
		})
	}
	return t, nil
}
