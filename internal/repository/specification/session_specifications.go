package specification

import (
	"time"

	"gorm.io/gorm"
)

// ActiveAt keeps sessions that expire strictly after Now.
type ActiveAt struct {
	Now time.Time
}

func (s ActiveAt) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at > ?", s.Now)
}
