package specification

import "gorm.io/gorm"

type ByFlagKey struct {
	Key string
}

func (s ByFlagKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(`"key" = ?`, s.Key)
}

type EnabledFlags struct{}

func (s EnabledFlags) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("enabled = ?", true)
}

// AuditForFlag filters audit entries by flag key.
type AuditForFlag struct {
	FlagKey string
}

func (s AuditForFlag) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("flag_key = ?", s.FlagKey)
}

// NewestFirst orders by created_at descending. Audit ids are UUIDv7, so the
// id tie breaker keeps reverse insertion order within one timestamp.
type NewestFirst struct{}

func (s NewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
