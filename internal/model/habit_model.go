package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Habit struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId           uuid.UUID `gorm:"type:uuid;not null;index"`
	Name             string    `gorm:"type:varchar(255);not null"`
	Color            string    `gorm:"type:varchar(32);not null;default:'#3b82f6'"`
	Frequency        string    `gorm:"type:varchar(20);not null;default:'daily'"`
	HabitType        string    `gorm:"type:varchar(20);not null;default:'boolean'"`
	Category         *string   `gorm:"type:varchar(100)"`
	IsActive         bool      `gorm:"not null"`
	IsArchived       bool      `gorm:"not null;default:false"`
	CurrentStreak    int       `gorm:"not null;default:0"`
	LongestStreak    int       `gorm:"not null;default:0"`
	TotalCompletions int       `gorm:"not null;default:0"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (Habit) TableName() string {
	return "habits"
}

func (h *Habit) BeforeCreate(tx *gorm.DB) error {
	if h.Id == uuid.Nil {
		h.Id = uuid.New()
	}
	return nil
}

type HabitLog struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	HabitId   uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Date      time.Time `gorm:"type:date;not null;index"`
	Completed bool      `gorm:"not null;default:false"`
	Value     *float64
	Notes     *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (HabitLog) TableName() string {
	return "habit_logs"
}

func (l *HabitLog) BeforeCreate(tx *gorm.DB) error {
	if l.Id == uuid.Nil {
		l.Id = uuid.New()
	}
	return nil
}

type Book struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Author    *string   `gorm:"type:varchar(255)"`
	Status    string    `gorm:"type:varchar(20);not null;default:'want_to_read'"`
	Rating    *int
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Book) TableName() string {
	return "books"
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.Id == uuid.Nil {
		b.Id = uuid.New()
	}
	return nil
}

type Challenge struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Status         string    `gorm:"type:varchar(20);not null;default:'active'"`
	Duration       int       `gorm:"not null"`
	CompletionRate float64   `gorm:"not null;default:0"`
	StartDate      time.Time `gorm:"not null"`
	EndDate        time.Time `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (Challenge) TableName() string {
	return "challenges"
}

func (c *Challenge) BeforeCreate(tx *gorm.DB) error {
	if c.Id == uuid.Nil {
		c.Id = uuid.New()
	}
	return nil
}

type Milestone struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index"`
	HabitId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Type       string    `gorm:"type:varchar(30);not null"`
	Value      int       `gorm:"not null"`
	AchievedAt time.Time `gorm:"autoCreateTime"`
}

func (Milestone) TableName() string {
	return "milestones"
}

func (m *Milestone) BeforeCreate(tx *gorm.DB) error {
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	return nil
}

// HabitWithOwnerRow is the habits JOIN users projection used by exports.
type HabitWithOwnerRow struct {
	Habit
	UserName  string
	UserEmail string
}

// HabitLogWithOwnerRow is the habit_logs JOIN habits JOIN users projection.
type HabitLogWithOwnerRow struct {
	HabitLog
	HabitName string
	UserName  string
	UserEmail string
}
