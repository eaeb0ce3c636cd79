package contract

import (
	"context"

	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error)
	// FindAllWithUser preloads the owning user of each session.
	FindAllWithUser(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error)
}
