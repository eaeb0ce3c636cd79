package implementation

import (
	"context"

	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/mapper"
	"habit-tracker-be/internal/model"
	"habit-tracker-be/internal/repository/contract"
	"habit-tracker-be/internal/repository/specification"

	"gorm.io/gorm"
)

type BookRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ContentMapper
}

func NewBookRepository(db *gorm.DB) contract.BookRepository {
	return &BookRepositoryImpl{
		db:     db,
		mapper: mapper.NewContentMapper(),
	}
}

func (r *BookRepositoryImpl) Create(ctx context.Context, book *entity.Book) error {
	m := r.mapper.BookToModel(book)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*book = *r.mapper.BookToEntity(m)
	return nil
}

func (r *BookRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Book, error) {
	var models []*model.Book
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.BooksToEntities(models), nil
}

func (r *BookRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Book{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BookRepositoryImpl) CountBy(ctx context.Context, column string, specs ...specification.Specification) ([]entity.GroupCount, error) {
	return countGrouped(r.db.WithContext(ctx).Model(&model.Book{}), column, specs...)
}

type ChallengeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ContentMapper
}

func NewChallengeRepository(db *gorm.DB) contract.ChallengeRepository {
	return &ChallengeRepositoryImpl{
		db:     db,
		mapper: mapper.NewContentMapper(),
	}
}

func (r *ChallengeRepositoryImpl) Create(ctx context.Context, challenge *entity.Challenge) error {
	m := r.mapper.ChallengeToModel(challenge)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*challenge = *r.mapper.ChallengeToEntity(m)
	return nil
}

func (r *ChallengeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Challenge, error) {
	var models []*model.Challenge
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ChallengesToEntities(models), nil
}

func (r *ChallengeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Challenge{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ChallengeRepositoryImpl) CountBy(ctx context.Context, column string, specs ...specification.Specification) ([]entity.GroupCount, error) {
	return countGrouped(r.db.WithContext(ctx).Model(&model.Challenge{}), column, specs...)
}

type MilestoneRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ContentMapper
}

func NewMilestoneRepository(db *gorm.DB) contract.MilestoneRepository {
	return &MilestoneRepositoryImpl{
		db:     db,
		mapper: mapper.NewContentMapper(),
	}
}

func (r *MilestoneRepositoryImpl) Create(ctx context.Context, milestone *entity.Milestone) error {
	m := r.mapper.MilestoneToModel(milestone)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	milestone.Id = m.Id
	milestone.AchievedAt = m.AchievedAt
	return nil
}

func (r *MilestoneRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Milestone{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
