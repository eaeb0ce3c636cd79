// FILE: internal/entity/feature_flag_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

const DefaultFlagCategory = "general"

type FeatureFlag struct {
	Id          uuid.UUID
	Key         string
	Name        string
	Description *string
	Category    string
	Enabled     bool
	Metadata    map[string]interface{}
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type AuditAction string

const (
	AuditActionCreated AuditAction = "CREATED"
	AuditActionUpdated AuditAction = "UPDATED"
	AuditActionDeleted AuditAction = "DELETED"
	AuditActionToggled AuditAction = "TOGGLED"
)

type FeatureFlagAuditEntry struct {
	Id          uuid.UUID
	FlagKey     string
	Action      AuditAction
	Changes     map[string]interface{}
	PerformedBy uuid.UUID
	CreatedAt   time.Time
}

type MutationKind string

const (
	MutationCreate MutationKind = "create"
	MutationUpdate MutationKind = "update"
	MutationDelete MutationKind = "delete"
)

// FlagMutation pairs a flag state change with the audit entry that records it.
// Both are persisted in one transaction.
type FlagMutation struct {
	Kind  MutationKind
	Flag  *FeatureFlag
	Audit *FeatureFlagAuditEntry
}
