package contract

import (
	"context"
	"time"

	"habit-tracker-be/internal/entity"
)

// TimeSeriesAggregator computes per-day buckets starting at since (UTC day).
// Days without rows are omitted; callers zero-fill.
type TimeSeriesAggregator interface {
	NewUsersByDay(ctx context.Context, since time.Time) ([]entity.DayCount, error)
	ActiveUsersByDay(ctx context.Context, since time.Time) ([]entity.DayCount, error)
	CompletionByDay(ctx context.Context, since time.Time) ([]entity.DayCompletion, error)
}
