// FILE: internal/mapper/feature_flag_mapper.go
// Mapper for FeatureFlag and audit entries <-> model conversion
package mapper

import (
	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/model"

	"gorm.io/datatypes"
)

type FeatureFlagMapper struct{}

func NewFeatureFlagMapper() *FeatureFlagMapper {
	return &FeatureFlagMapper{}
}

func (m *FeatureFlagMapper) ToEntity(f *model.FeatureFlag) *entity.FeatureFlag {
	if f == nil {
		return nil
	}
	var metadata map[string]interface{}
	if f.Metadata != nil {
		metadata = map[string]interface{}(f.Metadata)
	}
	return &entity.FeatureFlag{
		Id:          f.Id,
		Key:         f.Key,
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		Enabled:     f.Enabled,
		Metadata:    metadata,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func (m *FeatureFlagMapper) ToModel(f *entity.FeatureFlag) *model.FeatureFlag {
	if f == nil {
		return nil
	}
	var metadata datatypes.JSONMap
	if f.Metadata != nil {
		metadata = datatypes.JSONMap(f.Metadata)
	}
	return &model.FeatureFlag{
		Id:          f.Id,
		Key:         f.Key,
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		Enabled:     f.Enabled,
		Metadata:    metadata,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func (m *FeatureFlagMapper) ToEntities(models []*model.FeatureFlag) []*entity.FeatureFlag {
	entities := make([]*entity.FeatureFlag, 0, len(models))
	for _, f := range models {
		entities = append(entities, m.ToEntity(f))
	}
	return entities
}

func (m *FeatureFlagMapper) AuditToEntity(a *model.FeatureFlagAuditLog) *entity.FeatureFlagAuditEntry {
	if a == nil {
		return nil
	}
	changes := map[string]interface{}{}
	if a.Changes != nil {
		changes = map[string]interface{}(a.Changes)
	}
	return &entity.FeatureFlagAuditEntry{
		Id:          a.Id,
		FlagKey:     a.FlagKey,
		Action:      entity.AuditAction(a.Action),
		Changes:     changes,
		PerformedBy: a.PerformedBy,
		CreatedAt:   a.CreatedAt,
	}
}

func (m *FeatureFlagMapper) AuditToModel(a *entity.FeatureFlagAuditEntry) *model.FeatureFlagAuditLog {
	if a == nil {
		return nil
	}
	changes := datatypes.JSONMap{}
	for k, v := range a.Changes {
		changes[k] = v
	}
	return &model.FeatureFlagAuditLog{
		Id:          a.Id,
		FlagKey:     a.FlagKey,
		Action:      string(a.Action),
		Changes:     changes,
		PerformedBy: a.PerformedBy,
		CreatedAt:   a.CreatedAt,
	}
}

func (m *FeatureFlagMapper) AuditToEntities(models []*model.FeatureFlagAuditLog) []*entity.FeatureFlagAuditEntry {
	entities := make([]*entity.FeatureFlagAuditEntry, 0, len(models))
	for _, a := range models {
		entities = append(entities, m.AuditToEntity(a))
	}
	return entities
}
