// FILE: internal/dto/feature_dto.go
// DTOs for the feature flag registry and its audit trail
package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateFeatureFlagRequest adds a flag. When Key is empty it is derived from Name.
type CreateFeatureFlagRequest struct {
	Key         string                 `json:"key" validate:"omitempty,max=100"`
	Name        string                 `json:"name" validate:"required,max=200"`
	Description *string                `json:"description,omitempty" validate:"omitempty,max=1000"`
	Category    string                 `json:"category,omitempty" validate:"omitempty,max=50"`
	Enabled     bool                   `json:"enabled"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// UpdateFeatureFlagRequest is a partial patch; nil fields are left untouched.
type UpdateFeatureFlagRequest struct {
	Name        *string                `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string                `json:"description,omitempty" validate:"omitempty,max=1000"`
	Category    *string                `json:"category,omitempty" validate:"omitempty,min=1,max=50"`
	Enabled     *bool                  `json:"enabled,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type FeatureFlagResponse struct {
	Id          uuid.UUID              `json:"id"`
	Key         string                 `json:"key"`
	Name        string                 `json:"name"`
	Description *string                `json:"description"`
	Category    string                 `json:"category"`
	Enabled     bool                   `json:"enabled"`
	Metadata    map[string]interface{} `json:"metadata"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

type FeatureFlagListResponse struct {
	Flags []*FeatureFlagResponse `json:"flags"`
}

type FeatureFlagEnvelope struct {
	Flag *FeatureFlagResponse `json:"flag"`
}

// EnabledFeaturesResponse is returned to regular users.
type EnabledFeaturesResponse struct {
	Features []string `json:"features"`
}

type AuditLogQuery struct {
	FlagKey string
	Page    int
	Limit   int
}

type AuditEntryResponse struct {
	Id          uuid.UUID              `json:"id"`
	FlagKey     string                 `json:"flagKey"`
	Action      string                 `json:"action"`
	Changes     map[string]interface{} `json:"changes"`
	PerformedBy uuid.UUID              `json:"performedBy"`
	CreatedAt   time.Time              `json:"createdAt"`
}

type AuditLogResult struct {
	Entries []*AuditEntryResponse
	Total   int64
	Page    int
	Limit   int
}

// FlagChangedMessage is the in-process notification that a flag mutated
type FlagChangedMessage struct {
	FlagKey string `json:"flag_key"`
	Action  string `json:"action"`
	Source  string `json:"source"`
}
