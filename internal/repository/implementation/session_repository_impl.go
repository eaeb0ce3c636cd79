package implementation

import (
	"context"
	"errors"

	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/mapper"
	"habit-tracker-be/internal/model"
	"habit-tracker-be/internal/repository/contract"
	"habit-tracker-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewSessionRepository(db *gorm.DB) contract.SessionRepository {
	return &SessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *SessionRepositoryImpl) Create(ctx context.Context, session *entity.Session) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *SessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error) {
	var m model.RefreshToken
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SessionRepositoryImpl) FindAllWithUser(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error) {
	var models []*model.RefreshToken
	query := applySpecifications(r.db.WithContext(ctx).Preload("User"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SessionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.RefreshToken{})
	return result.RowsAffected, result.Error
}

// DeleteAll refuses to run without a filter (gorm.ErrMissingWhereClause).
func (r *SessionRepositoryImpl) DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error) {
	result := applySpecifications(r.db.WithContext(ctx), specs...).Delete(&model.RefreshToken{})
	return result.RowsAffected, result.Error
}
