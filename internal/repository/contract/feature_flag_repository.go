// FILE: internal/repository/contract/feature_flag_repository.go
// Repository interface for feature flags and their audit trail
package contract

import (
	"context"

	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/repository/specification"
)

type FeatureFlagRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FeatureFlag, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FeatureFlag, error)
	FindKeys(ctx context.Context, specs ...specification.Specification) ([]string, error)

	// ApplyMutation writes the flag change and its audit entry atomically.
	ApplyMutation(ctx context.Context, mutation *entity.FlagMutation) error

	FindAuditEntries(ctx context.Context, specs ...specification.Specification) ([]*entity.FeatureFlagAuditEntry, error)
	CountAuditEntries(ctx context.Context, specs ...specification.Specification) (int64, error)
}

// EnabledKeysCache caches the sorted list of enabled flag keys.
type EnabledKeysCache interface {
	Get(ctx context.Context) ([]string, bool, error)
	Set(ctx context.Context, keys []string) error
	Invalidate(ctx context.Context) error
	Backend() string
}
