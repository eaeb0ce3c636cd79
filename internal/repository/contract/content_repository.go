package contract

import (
	"context"

	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/repository/specification"
)

type BookRepository interface {
	Create(ctx context.Context, book *entity.Book) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Book, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountBy(ctx context.Context, column string, specs ...specification.Specification) ([]entity.GroupCount, error)
}

type ChallengeRepository interface {
	Create(ctx context.Context, challenge *entity.Challenge) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Challenge, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountBy(ctx context.Context, column string, specs ...specification.Specification) ([]entity.GroupCount, error)
}

type MilestoneRepository interface {
	Create(ctx context.Context, milestone *entity.Milestone) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
