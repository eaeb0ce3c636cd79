package dashboard

import (
	"context"
	"math"
	"time"

	"habit-tracker-be/internal/dto"
	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/pkg/logger"
	"habit-tracker-be/internal/repository/specification"
	"habit-tracker-be/internal/repository/unitofwork"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultTrendDays = 30
	dateLayout       = "2006-01-02"
)

// Aggregator computes the admin analytics read models
type Aggregator struct {
	logger logger.ILogger
	now    func() time.Time
}

// NewAggregator creates a new dashboard aggregator
func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CompletionRate returns round(completed/total*100), 0 when total is 0
func CompletionRate(completed, total int64) int64 {
	if total <= 0 {
		return 0
	}
	return int64(math.Round(float64(completed) / float64(total) * 100))
}

// Round1 rounds to one decimal place
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// StartOfDay truncates t to its UTC day
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// GetStats returns application wide totals and activity windows
func (a *Aggregator) GetStats(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.ApplicationStatsResponse, error) {
	now := a.now()
	sevenDaysAgo := now.AddDate(0, 0, -7)
	thirtyDaysAgo := now.AddDate(0, 0, -30)

	var stats dto.ApplicationStatsResponse
	var completedLogs int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalUsers, err = uow.UserRepository().Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalHabits, err = uow.HabitRepository().Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalHabitLogs, err = uow.HabitLogRepository().Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		completedLogs, err = uow.HabitLogRepository().Count(gctx, specification.CompletedLogs{})
		return err
	})
	g.Go(func() (err error) {
		stats.AdminCount, err = uow.UserRepository().Count(gctx, specification.AdminUsers{})
		return err
	})
	g.Go(func() (err error) {
		stats.ActiveUsersLast7Days, err = uow.HabitLogRepository().CountDistinctUsers(gctx, specification.CreatedBetween{From: sevenDaysAgo, To: now})
		return err
	})
	g.Go(func() (err error) {
		stats.ActiveUsersLast30Days, err = uow.HabitLogRepository().CountDistinctUsers(gctx, specification.CreatedBetween{From: thirtyDaysAgo, To: now})
		return err
	})
	g.Go(func() (err error) {
		stats.NewRegistrationsLast7Days, err = uow.UserRepository().Count(gctx, specification.CreatedBetween{From: sevenDaysAgo, To: now})
		return err
	})
	if err := g.Wait(); err != nil {
		a.logger.Error("ADMIN_STATS", "Failed to compute application stats", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	if stats.TotalHabits > 0 {
		stats.AvgCompletionRate = CompletionRate(completedLogs, stats.TotalHabitLogs)
	}
	return &stats, nil
}

// GetTrends returns days+1 consecutive daily points ending today (UTC)
func (a *Aggregator) GetTrends(ctx context.Context, uow unitofwork.UnitOfWork, days int) ([]dto.TrendPoint, error) {
	if days < 1 {
		days = DefaultTrendDays
	}
	since := StartOfDay(a.now()).AddDate(0, 0, -days)
	series := uow.TimeSeriesAggregator()

	var (
		newUsers    []entity.DayCount
		activeUsers []entity.DayCount
		completion  []entity.DayCompletion
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		newUsers, err = series.NewUsersByDay(gctx, since)
		return err
	})
	g.Go(func() (err error) {
		activeUsers, err = series.ActiveUsersByDay(gctx, since)
		return err
	})
	g.Go(func() (err error) {
		completion, err = series.CompletionByDay(gctx, since)
		return err
	})
	if err := g.Wait(); err != nil {
		a.logger.Error("ADMIN_TRENDS", "Failed to compute trends", map[string]interface{}{"days": days, "error": err.Error()})
		return nil, err
	}

	return MergeTrends(since, days, newUsers, activeUsers, completion), nil
}

// MergeTrends builds a dense series of days+1 points starting at since and
// fills it from the per-day buckets. Buckets outside the window are ignored.
func MergeTrends(since time.Time, days int, newUsers, activeUsers []entity.DayCount, completion []entity.DayCompletion) []dto.TrendPoint {
	start := StartOfDay(since)
	points := make([]dto.TrendPoint, days+1)
	index := make(map[string]int, days+1)
	for i := range points {
		key := start.AddDate(0, 0, i).Format(dateLayout)
		points[i] = dto.TrendPoint{Date: key}
		index[key] = i
	}

	for _, row := range newUsers {
		if i, ok := index[row.Day.UTC().Format(dateLayout)]; ok {
			points[i].NewUsers = row.Count
		}
	}
	for _, row := range activeUsers {
		if i, ok := index[row.Day.UTC().Format(dateLayout)]; ok {
			points[i].ActiveUsers = row.Count
		}
	}
	for _, row := range completion {
		if i, ok := index[row.Day.UTC().Format(dateLayout)]; ok {
			points[i].CompletionRate = CompletionRate(row.Completed, row.Total)
		}
	}
	return points
}

// GetContentBreakdown groups content by its categorical fields and derives engagement ratios
func (a *Aggregator) GetContentBreakdown(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.ContentBreakdownResponse, error) {
	var (
		byFrequency, byType, byCategory   []entity.GroupCount
		booksByStatus, challengesByStatus []entity.GroupCount
		totalUsers, totalHabits           int64
		totalLogs, completedLogs          int64
		usersWithActiveHabits             int64
		avgStreak                         float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		byFrequency, err = uow.HabitRepository().CountBy(gctx, "frequency")
		return err
	})
	g.Go(func() (err error) {
		byType, err = uow.HabitRepository().CountBy(gctx, "habit_type")
		return err
	})
	g.Go(func() (err error) {
		byCategory, err = uow.HabitRepository().CountBy(gctx, "category", specification.NotNull{Field: "category"})
		return err
	})
	g.Go(func() (err error) {
		booksByStatus, err = uow.BookRepository().CountBy(gctx, "status")
		return err
	})
	g.Go(func() (err error) {
		challengesByStatus, err = uow.ChallengeRepository().CountBy(gctx, "status")
		return err
	})
	g.Go(func() (err error) {
		totalUsers, err = uow.UserRepository().Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		usersWithActiveHabits, err = uow.UserRepository().Count(gctx, specification.UsersWithActiveHabits{})
		return err
	})
	g.Go(func() (err error) {
		totalHabits, err = uow.HabitRepository().Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		avgStreak, err = uow.HabitRepository().AverageCurrentStreak(gctx, specification.NotArchived{})
		return err
	})
	g.Go(func() (err error) {
		totalLogs, err = uow.HabitLogRepository().Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		completedLogs, err = uow.HabitLogRepository().Count(gctx, specification.CompletedLogs{})
		return err
	})
	if err := g.Wait(); err != nil {
		a.logger.Error("ADMIN_BREAKDOWN", "Failed to compute content breakdown", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	res := &dto.ContentBreakdownResponse{
		Habits: dto.HabitBreakdown{
			ByFrequency: make([]dto.FrequencyCount, 0, len(byFrequency)),
			ByType:      make([]dto.TypeCount, 0, len(byType)),
			ByCategory:  make([]dto.CategoryCount, 0, len(byCategory)),
		},
		Books:      dto.StatusBreakdown{ByStatus: toStatusCounts(booksByStatus)},
		Challenges: dto.StatusBreakdown{ByStatus: toStatusCounts(challengesByStatus)},
		Engagement: dto.EngagementStats{
			AvgCompletionRate:     CompletionRate(completedLogs, totalLogs),
			AvgStreakLength:       Round1(avgStreak),
			UsersWithActiveHabits: usersWithActiveHabits,
			TotalUsers:            totalUsers,
		},
	}
	if totalUsers > 0 {
		res.Engagement.AvgHabitsPerUser = Round1(float64(totalHabits) / float64(totalUsers))
	}

	for _, row := range byFrequency {
		res.Habits.ByFrequency = append(res.Habits.ByFrequency, dto.FrequencyCount{Frequency: row.Key, Count: row.Count})
	}
	for _, row := range byType {
		res.Habits.ByType = append(res.Habits.ByType, dto.TypeCount{Type: row.Key, Count: row.Count})
	}
	for _, row := range byCategory {
		category := row.Key
		if category == "" {
			category = "Uncategorized"
		}
		res.Habits.ByCategory = append(res.Habits.ByCategory, dto.CategoryCount{Category: category, Count: row.Count})
	}
	return res, nil
}

func toStatusCounts(rows []entity.GroupCount) []dto.StatusCount {
	res := make([]dto.StatusCount, 0, len(rows))
	for _, row := range rows {
		res = append(res, dto.StatusCount{Status: row.Key, Count: row.Count})
	}
	return res
}
