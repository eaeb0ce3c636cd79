package feature

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"habit-tracker-be/internal/dto"
	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/pkg/apperror"
	"habit-tracker-be/internal/repository/specification"
	"habit-tracker-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 100
)

var keyPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Manager handles the feature flag registry and its audit trail
type Manager struct{}

// NewManager creates a new feature flag manager
func NewManager() *Manager {
	return &Manager{}
}

// ValidateKey checks a flag key against ^[a-z0-9_]+$
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return apperror.NewValidation("Flag key must contain only lowercase letters, digits and underscores").
			WithDetails(map[string]interface{}{"key": key, "pattern": keyPattern.String()})
	}
	return nil
}

// SuggestKey derives a snake_case key from a display name
func SuggestKey(name string) string {
	return strings.ReplaceAll(slug.Make(name), "-", "_")
}

// GetAll returns every flag ordered by category then key
func (m *Manager) GetAll(ctx context.Context, uow unitofwork.UnitOfWork) ([]*entity.FeatureFlag, error) {
	return uow.FeatureFlagRepository().FindAll(ctx)
}

// GetEnabledKeys returns the sorted keys of enabled flags
func (m *Manager) GetEnabledKeys(ctx context.Context, uow unitofwork.UnitOfWork) ([]string, error) {
	return uow.FeatureFlagRepository().FindKeys(ctx, specification.EnabledFlags{})
}

// Create registers a new flag and records a CREATED audit entry
func (m *Manager) Create(ctx context.Context, uow unitofwork.UnitOfWork, req dto.CreateFeatureFlagRequest, actorId uuid.UUID) (*entity.FeatureFlag, error) {
	key := strings.TrimSpace(req.Key)
	if key == "" {
		key = SuggestKey(req.Name)
	}
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	existing, err := uow.FeatureFlagRepository().FindOne(ctx, specification.ByFlagKey{Key: key})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, duplicateKey(key)
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = entity.DefaultFlagCategory
	}

	flag := &entity.FeatureFlag{
		Key:         key,
		Name:        req.Name,
		Description: req.Description,
		Category:    category,
		Enabled:     req.Enabled,
		Metadata:    req.Metadata,
	}

	mutation := &entity.FlagMutation{
		Kind: entity.MutationCreate,
		Flag: flag,
		Audit: &entity.FeatureFlagAuditEntry{
			FlagKey:     key,
			Action:      entity.AuditActionCreated,
			Changes:     snapshot(flag),
			PerformedBy: actorId,
		},
	}
	if err := uow.FeatureFlagRepository().ApplyMutation(ctx, mutation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateKey(key)
		}
		return nil, fmt.Errorf("create feature flag: %w", err)
	}

	return flag, nil
}

// Update applies a partial patch and returns the recorded audit entry.
// TOGGLED is recorded when enabled is the only changed field.
func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, key string, req dto.UpdateFeatureFlagRequest, actorId uuid.UUID) (*entity.FeatureFlag, *entity.FeatureFlagAuditEntry, error) {
	flag, err := uow.FeatureFlagRepository().FindOne(ctx, specification.ByFlagKey{Key: key})
	if err != nil {
		return nil, nil, err
	}
	if flag == nil {
		return nil, nil, apperror.NewNotFound("Feature flag", key)
	}

	changes := Diff(flag, req)
	if req.Name != nil {
		flag.Name = *req.Name
	}
	if req.Description != nil {
		flag.Description = req.Description
	}
	if req.Category != nil {
		flag.Category = *req.Category
	}
	if req.Enabled != nil {
		flag.Enabled = *req.Enabled
	}
	if req.Metadata != nil {
		flag.Metadata = req.Metadata
	}

	mutation := &entity.FlagMutation{
		Kind: entity.MutationUpdate,
		Flag: flag,
		Audit: &entity.FeatureFlagAuditEntry{
			FlagKey:     key,
			Action:      ActionFor(changes),
			Changes:     changes,
			PerformedBy: actorId,
		},
	}
	if err := uow.FeatureFlagRepository().ApplyMutation(ctx, mutation); err != nil {
		return nil, nil, fmt.Errorf("update feature flag: %w", err)
	}

	return flag, mutation.Audit, nil
}

// Delete hard-deletes a flag after recording a DELETED audit entry
func (m *Manager) Delete(ctx context.Context, uow unitofwork.UnitOfWork, key string, actorId uuid.UUID) error {
	flag, err := uow.FeatureFlagRepository().FindOne(ctx, specification.ByFlagKey{Key: key})
	if err != nil {
		return err
	}
	if flag == nil {
		return apperror.NewNotFound("Feature flag", key)
	}

	mutation := &entity.FlagMutation{
		Kind: entity.MutationDelete,
		Flag: flag,
		Audit: &entity.FeatureFlagAuditEntry{
			FlagKey:     key,
			Action:      entity.AuditActionDeleted,
			Changes:     snapshot(flag),
			PerformedBy: actorId,
		},
	}
	if err := uow.FeatureFlagRepository().ApplyMutation(ctx, mutation); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewNotFound("Feature flag", key)
		}
		return fmt.Errorf("delete feature flag: %w", err)
	}
	return nil
}

// GetAuditLog returns one newest-first page of audit entries and the filtered total
func (m *Manager) GetAuditLog(ctx context.Context, uow unitofwork.UnitOfWork, q dto.AuditLogQuery) ([]*entity.FeatureFlagAuditEntry, int64, error) {
	page, limit := NormalizePage(q.Page, q.Limit)

	var filters []specification.Specification
	if q.FlagKey != "" {
		filters = append(filters, specification.AuditForFlag{FlagKey: q.FlagKey})
	}

	total, err := uow.FeatureFlagRepository().CountAuditEntries(ctx, filters...)
	if err != nil {
		return nil, 0, err
	}

	specs := append(filters,
		specification.NewestFirst{},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	entries, err := uow.FeatureFlagRepository().FindAuditEntries(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// NormalizePage applies the audit log paging defaults
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultAuditLimit
	}
	if limit > MaxAuditLimit {
		limit = MaxAuditLimit
	}
	return page, limit
}

// Diff returns {field: {from, to}} for every patch field whose value differs
func Diff(flag *entity.FeatureFlag, req dto.UpdateFeatureFlagRequest) map[string]interface{} {
	changes := map[string]interface{}{}
	record := func(field string, from, to interface{}) {
		changes[field] = map[string]interface{}{"from": from, "to": to}
	}

	if req.Name != nil && *req.Name != flag.Name {
		record("name", flag.Name, *req.Name)
	}
	if req.Description != nil && (flag.Description == nil || *flag.Description != *req.Description) {
		record("description", derefString(flag.Description), *req.Description)
	}
	if req.Category != nil && *req.Category != flag.Category {
		record("category", flag.Category, *req.Category)
	}
	if req.Enabled != nil && *req.Enabled != flag.Enabled {
		record("enabled", flag.Enabled, *req.Enabled)
	}
	if req.Metadata != nil && !reflect.DeepEqual(req.Metadata, flag.Metadata) {
		record("metadata", flag.Metadata, req.Metadata)
	}
	return changes
}

// ActionFor classifies an update by its changed fields
func ActionFor(changes map[string]interface{}) entity.AuditAction {
	if _, ok := changes["enabled"]; ok && len(changes) == 1 {
		return entity.AuditActionToggled
	}
	return entity.AuditActionUpdated
}

func snapshot(flag *entity.FeatureFlag) map[string]interface{} {
	return map[string]interface{}{
		"key":         flag.Key,
		"name":        flag.Name,
		"description": derefString(flag.Description),
		"category":    flag.Category,
		"enabled":     flag.Enabled,
		"metadata":    flag.Metadata,
	}
}

func derefString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func duplicateKey(key string) error {
	return apperror.NewConflict(fmt.Sprintf("Feature flag with key '%s' already exists", key)).
		WithDetails(map[string]interface{}{"key": key})
}
