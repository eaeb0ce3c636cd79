package specification

import "gorm.io/gorm"

type NotArchived struct{}

func (s NotArchived) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_archived = ?", false)
}

type CompletedLogs struct{}

func (s CompletedLogs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("completed = ?", true)
}
