// FILE: internal/repository/implementation/feature_flag_repository_impl.go
// Implementation of FeatureFlagRepository
package implementation

import (
	"context"
	"errors"
	"fmt"

	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/mapper"
	"habit-tracker-be/internal/model"
	"habit-tracker-be/internal/repository/contract"
	"habit-tracker-be/internal/repository/specification"

	"gorm.io/gorm"
)

type FeatureFlagRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FeatureFlagMapper
}

func NewFeatureFlagRepository(db *gorm.DB) contract.FeatureFlagRepository {
	return &FeatureFlagRepositoryImpl{
		db:     db,
		mapper: mapper.NewFeatureFlagMapper(),
	}
}

func (r *FeatureFlagRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FeatureFlag, error) {
	var m model.FeatureFlag
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FeatureFlagRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FeatureFlag, error) {
	var models []*model.FeatureFlag
	query := applySpecifications(r.db.WithContext(ctx).Order("category ASC").Order(`"key" ASC`), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FeatureFlagRepositoryImpl) FindKeys(ctx context.Context, specs ...specification.Specification) ([]string, error) {
	keys := make([]string, 0)
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.FeatureFlag{}).Order(`"key" ASC`), specs...)
	if err := query.Pluck("key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *FeatureFlagRepositoryImpl) ApplyMutation(ctx context.Context, mutation *entity.FlagMutation) error {
	if mutation == nil || mutation.Flag == nil || mutation.Audit == nil {
		return fmt.Errorf("flag mutation requires both a flag and an audit entry")
	}

	// Nested Transaction calls become savepoints when the UnitOfWork already began one.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch mutation.Kind {
		case entity.MutationCreate:
			m := r.mapper.ToModel(mutation.Flag)
			if err := tx.Create(m).Error; err != nil {
				return err
			}
			*mutation.Flag = *r.mapper.ToEntity(m)
			return r.writeAudit(tx, mutation.Audit)

		case entity.MutationUpdate:
			m := r.mapper.ToModel(mutation.Flag)
			if err := tx.Save(m).Error; err != nil {
				return err
			}
			*mutation.Flag = *r.mapper.ToEntity(m)
			return r.writeAudit(tx, mutation.Audit)

		case entity.MutationDelete:
			if err := r.writeAudit(tx, mutation.Audit); err != nil {
				return err
			}
			result := tx.Where("id = ?", mutation.Flag.Id).Delete(&model.FeatureFlag{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil

		default:
			return fmt.Errorf("unknown flag mutation kind %q", mutation.Kind)
		}
	})
}

func (r *FeatureFlagRepositoryImpl) writeAudit(tx *gorm.DB, audit *entity.FeatureFlagAuditEntry) error {
	m := r.mapper.AuditToModel(audit)
	if err := tx.Create(m).Error; err != nil {
		return fmt.Errorf("write audit entry: %w", err)
	}
	*audit = *r.mapper.AuditToEntity(m)
	return nil
}

func (r *FeatureFlagRepositoryImpl) FindAuditEntries(ctx context.Context, specs ...specification.Specification) ([]*entity.FeatureFlagAuditEntry, error) {
	var models []*model.FeatureFlagAuditLog
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.AuditToEntities(models), nil
}

func (r *FeatureFlagRepositoryImpl) CountAuditEntries(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.FeatureFlagAuditLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
