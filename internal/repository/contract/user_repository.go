package contract

import (
	"context"

	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindSummaries returns users with their habit and habit log counts.
	FindSummaries(ctx context.Context, specs ...specification.Specification) ([]*entity.UserSummary, error)
	CountRelated(ctx context.Context, userId uuid.UUID) (*entity.UserCounts, error)
	UpdateRole(ctx context.Context, userId uuid.UUID, isAdmin bool) error
}
