package contract

import (
	"context"

	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/repository/specification"
)

type HabitRepository interface {
	Create(ctx context.Context, habit *entity.Habit) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Habit, error)
	FindAllWithOwner(ctx context.Context, specs ...specification.Specification) ([]*entity.HabitWithOwner, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountBy(ctx context.Context, column string, specs ...specification.Specification) ([]entity.GroupCount, error)
	AverageCurrentStreak(ctx context.Context, specs ...specification.Specification) (float64, error)
}

type HabitLogRepository interface {
	Create(ctx context.Context, log *entity.HabitLog) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountDistinctUsers(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindAllWithOwner(ctx context.Context, specs ...specification.Specification) ([]*entity.HabitLogWithOwner, error)
}
