package specification

import (
	"strings"

	"gorm.io/gorm"

	"github.com/google/uuid"
)

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// UserSearch matches a case-insensitive substring of name or email.
// LOWER/LIKE keeps the query portable between Postgres and SQLite.
type UserSearch struct {
	Query string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike makes % and _ match literally in a LIKE ... ESCAPE '\' pattern.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (s UserSearch) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + EscapeLike(strings.ToLower(s.Query)) + "%"
	return db.Where(`(LOWER(users.name) LIKE ? ESCAPE '\' OR LOWER(users.email) LIKE ? ESCAPE '\')`, pattern, pattern)
}

type AdminUsers struct{}

func (s AdminUsers) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_admin = ?", true)
}

// OrderByHabitCount orders users by how many habits they own.
type OrderByHabitCount struct {
	Desc bool
}

func (s OrderByHabitCount) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order("(SELECT COUNT(*) FROM habits WHERE habits.user_id = users.id) " + direction)
}

// UsersWithActiveHabits keeps users owning at least one active, non-archived habit.
type UsersWithActiveHabits struct{}

func (s UsersWithActiveHabits) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("EXISTS (SELECT 1 FROM habits WHERE habits.user_id = users.id AND habits.is_active = ? AND habits.is_archived = ?)", true, false)
}
