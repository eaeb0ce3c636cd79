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

const userSummarySelect = "users.*, " +
	"(SELECT COUNT(*) FROM habits WHERE habits.user_id = users.id) AS habit_count, " +
	"(SELECT COUNT(*) FROM habit_logs WHERE habit_logs.user_id = users.id) AS habit_log_count"

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	modelUser := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(modelUser).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(modelUser)
	return nil
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var modelUser model.User
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelUser), nil
}

func (r *UserRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var modelUsers []*model.User
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelUsers).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelUsers), nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.User{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepositoryImpl) FindSummaries(ctx context.Context, specs ...specification.Specification) ([]*entity.UserSummary, error) {
	var rows []*model.UserSummaryRow
	query := applySpecifications(r.db.WithContext(ctx).Table("users").Select(userSummarySelect), specs...)

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToSummaries(rows), nil
}

func (r *UserRepositoryImpl) CountRelated(ctx context.Context, userId uuid.UUID) (*entity.UserCounts, error) {
	var row struct {
		Habits     int64
		HabitLogs  int64
		Milestones int64
		Books      int64
		Challenges int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM habits WHERE user_id = ?) AS habits,
			(SELECT COUNT(*) FROM habit_logs WHERE user_id = ?) AS habit_logs,
			(SELECT COUNT(*) FROM milestones WHERE user_id = ?) AS milestones,
			(SELECT COUNT(*) FROM books WHERE user_id = ?) AS books,
			(SELECT COUNT(*) FROM challenges WHERE user_id = ?) AS challenges
	`, userId, userId, userId, userId, userId).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &entity.UserCounts{
		Habits:     row.Habits,
		HabitLogs:  row.HabitLogs,
		Milestones: row.Milestones,
		Books:      row.Books,
		Challenges: row.Challenges,
	}, nil
}

func (r *UserRepositoryImpl) UpdateRole(ctx context.Context, userId uuid.UUID, isAdmin bool) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userId).Update("is_admin", isAdmin).Error
}
