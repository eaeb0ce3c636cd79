package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FeatureFlag struct {
	Id          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Key         string            `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name        string            `gorm:"type:varchar(255);not null"`
	Description *string           `gorm:"type:text"`
	Category    string            `gorm:"type:varchar(50);not null;default:'general'"`
	Enabled     bool              `gorm:"not null;default:false"`
	Metadata    datatypes.JSONMap
	CreatedAt   time.Time         `gorm:"autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime"`
}

func (FeatureFlag) TableName() string {
	return "feature_flags"
}

func (f *FeatureFlag) BeforeCreate(tx *gorm.DB) error {
	if f.Id == uuid.Nil {
		f.Id = uuid.New()
	}
	return nil
}

// FeatureFlagAuditLog has no foreign key to feature_flags; entries outlive the flag.
type FeatureFlagAuditLog struct {
	Id          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	FlagKey     string            `gorm:"type:varchar(100);not null;index"`
	Action      string            `gorm:"type:varchar(20);not null"`
	Changes     datatypes.JSONMap `gorm:"not null"`
	PerformedBy uuid.UUID         `gorm:"type:uuid;not null"`
	CreatedAt   time.Time         `gorm:"autoCreateTime;index"`
}

func (FeatureFlagAuditLog) TableName() string {
	return "feature_flag_audit_logs"
}

// BeforeCreate assigns a time-ordered UUIDv7 so entries sharing a created_at
// still sort by insertion.
func (a *FeatureFlagAuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.Id == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		a.Id = id
	}
	return nil
}
