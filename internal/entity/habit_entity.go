// FILE: internal/entity/habit_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type HabitFrequency string

const (
	HabitFrequencyDaily  HabitFrequency = "daily"
	HabitFrequencyWeekly HabitFrequency = "weekly"
	HabitFrequencyCustom HabitFrequency = "custom"
)

type Habit struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	Name             string
	Color            string
	Frequency        HabitFrequency
	HabitType        string
	Category         *string
	IsActive         bool
	IsArchived       bool
	CurrentStreak    int
	LongestStreak    int
	TotalCompletions int
	CreatedAt        time.Time
}

type HabitLog struct {
	Id        uuid.UUID
	HabitId   uuid.UUID
	UserId    uuid.UUID
	Date      time.Time
	Completed bool
	Value     *float64
	Notes     *string
	CreatedAt time.Time
}

type Book struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Author    *string
	Status    string
	Rating    *int
	CreatedAt time.Time
}

type Challenge struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	Name           string
	Status         string
	Duration       int
	CompletionRate float64
	StartDate      time.Time
	EndDate        time.Time
	CreatedAt      time.Time
}

type Milestone struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	HabitId    uuid.UUID
	Type       string
	Value      int
	AchievedAt time.Time
}

// HabitWithOwner is a habit joined with its owner's name and email.
type HabitWithOwner struct {
	Habit
	UserName  string
	UserEmail string
}

// HabitLogWithOwner is a log joined with its habit name and owner.
type HabitLogWithOwner struct {
	HabitLog
	HabitName string
	UserName  string
	UserEmail string
}
