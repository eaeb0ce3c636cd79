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

type HabitRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.HabitMapper
}

func NewHabitRepository(db *gorm.DB) contract.HabitRepository {
	return &HabitRepositoryImpl{
		db:     db,
		mapper: mapper.NewHabitMapper(),
	}
}

func (r *HabitRepositoryImpl) Create(ctx context.Context, habit *entity.Habit) error {
	m := r.mapper.ToModel(habit)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*habit = *r.mapper.ToEntity(m)
	return nil
}

func (r *HabitRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Habit, error) {
	var models []*model.Habit
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

// FindAllWithOwner joins users; specs must qualify ambiguous columns (habits.created_at).
func (r *HabitRepositoryImpl) FindAllWithOwner(ctx context.Context, specs ...specification.Specification) ([]*entity.HabitWithOwner, error) {
	var rows []*model.HabitWithOwnerRow
	query := r.db.WithContext(ctx).
		Table("habits").
		Select("habits.*, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = habits.user_id")
	query = applySpecifications(query, specs...)

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.WithOwnerToEntities(rows), nil
}

func (r *HabitRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Habit{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *HabitRepositoryImpl) CountBy(ctx context.Context, column string, specs ...specification.Specification) ([]entity.GroupCount, error) {
	return countGrouped(r.db.WithContext(ctx).Model(&model.Habit{}), column, specs...)
}

func (r *HabitRepositoryImpl) AverageCurrentStreak(ctx context.Context, specs ...specification.Specification) (float64, error) {
	var row struct {
		Average *float64
	}
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Habit{}).Select("AVG(current_streak) AS average"), specs...)
	if err := query.Scan(&row).Error; err != nil {
		return 0, err
	}
	if row.Average == nil {
		return 0, nil
	}
	return *row.Average, nil
}

type HabitLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.HabitMapper
}

func NewHabitLogRepository(db *gorm.DB) contract.HabitLogRepository {
	return &HabitLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewHabitMapper(),
	}
}

func (r *HabitLogRepositoryImpl) Create(ctx context.Context, log *entity.HabitLog) error {
	m := r.mapper.LogToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.LogToEntity(m)
	return nil
}

func (r *HabitLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.HabitLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *HabitLogRepositoryImpl) CountDistinctUsers(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.HabitLog{}), specs...)
	if err := query.Distinct("user_id").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindAllWithOwner joins habits and users; specs must qualify ambiguous columns.
func (r *HabitLogRepositoryImpl) FindAllWithOwner(ctx context.Context, specs ...specification.Specification) ([]*entity.HabitLogWithOwner, error) {
	var rows []*model.HabitLogWithOwnerRow
	query := r.db.WithContext(ctx).
		Table("habit_logs").
		Select("habit_logs.*, habits.name AS habit_name, users.name AS user_name, users.email AS user_email").
		Joins("JOIN habits ON habits.id = habit_logs.habit_id").
		Joins("JOIN users ON users.id = habit_logs.user_id")
	query = applySpecifications(query, specs...)

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.LogsWithOwnerToEntities(rows), nil
}
