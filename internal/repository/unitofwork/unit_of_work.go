package unitofwork

import (
	"context"

	"habit-tracker-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	HabitRepository() contract.HabitRepository
	HabitLogRepository() contract.HabitLogRepository
	BookRepository() contract.BookRepository
	ChallengeRepository() contract.ChallengeRepository
	MilestoneRepository() contract.MilestoneRepository

	FeatureFlagRepository() contract.FeatureFlagRepository
	SessionRepository() contract.SessionRepository
	TimeSeriesAggregator() contract.TimeSeriesAggregator
}
