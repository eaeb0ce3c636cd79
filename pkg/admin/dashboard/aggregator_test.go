package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/pkg/logger"
	"habit-tracker-be/internal/pkg/testdb"
	"habit-tracker-be/internal/repository/contract"
	"habit-tracker-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSeries struct {
	newUsers    []entity.DayCount
	activeUsers []entity.DayCount
	completion  []entity.DayCompletion
	err         error
	since       time.Time
}

func (f *fakeSeries) NewUsersByDay(ctx context.Context, since time.Time) ([]entity.DayCount, error) {
	f.since = since
	return f.newUsers, f.err
}

func (f *fakeSeries) ActiveUsersByDay(ctx context.Context, since time.Time) ([]entity.DayCount, error) {
	return f.activeUsers, nil
}

func (f *fakeSeries) CompletionByDay(ctx context.Context, since time.Time) ([]entity.DayCompletion, error) {
	return f.completion, nil
}

type seriesUow struct {
	unitofwork.UnitOfWork
	series contract.TimeSeriesAggregator
}

func (u seriesUow) TimeSeriesAggregator() contract.TimeSeriesAggregator {
	return u.series
}

func day(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

func fixedAggregator(now time.Time) *Aggregator {
	a := NewAggregator(logger.NewNopLogger())
	a.now = func() time.Time { return now }
	return a
}

func TestCompletionRate(t *testing.T) {
	assert.EqualValues(t, 0, CompletionRate(0, 0))
	assert.EqualValues(t, 0, CompletionRate(5, 0))
	assert.EqualValues(t, 67, CompletionRate(2, 3))
	assert.EqualValues(t, 100, CompletionRate(4, 4))
	assert.EqualValues(t, 33, CompletionRate(1, 3))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 1.3, Round1(4.0/3.0))
	assert.Equal(t, 2.5, Round1(2.45))
	assert.Equal(t, 0.0, Round1(0))
}

func TestMergeTrends_DenseSeries(t *testing.T) {
	since := day("2026-03-01")
	points := MergeTrends(since, 5,
		[]entity.DayCount{{Day: day("2026-03-02"), Count: 3}, {Day: day("2026-02-20"), Count: 9}},
		[]entity.DayCount{{Day: day("2026-03-06"), Count: 2}},
		[]entity.DayCompletion{{Day: day("2026-03-02"), Total: 4, Completed: 3}, {Day: day("2026-03-03"), Total: 0}},
	)

	require.Len(t, points, 6)
	for i, p := range points {
		assert.Equal(t, since.AddDate(0, 0, i).Format(dateLayout), p.Date)
	}
	assert.EqualValues(t, 0, points[0].NewUsers)
	assert.EqualValues(t, 3, points[1].NewUsers)
	assert.EqualValues(t, 75, points[1].CompletionRate)
	assert.EqualValues(t, 0, points[2].CompletionRate)
	assert.EqualValues(t, 2, points[5].ActiveUsers)
}

func TestGetTrends_ReturnsDaysPlusOne(t *testing.T) {
	now := time.Date(2026, 5, 10, 15, 30, 0, 0, time.UTC)
	series := &fakeSeries{newUsers: []entity.DayCount{{Day: day("2026-05-10"), Count: 1}}}
	uow := seriesUow{series: series}

	for _, days := range []int{1, 7, 30, 365} {
		points, err := fixedAggregator(now).GetTrends(context.Background(), uow, days)
		require.NoError(t, err)
		require.Len(t, points, days+1)
		assert.Equal(t, "2026-05-10", points[days].Date)
		assert.EqualValues(t, 1, points[days].NewUsers)
		assert.Equal(t, day("2026-05-10").AddDate(0, 0, -days), series.since)
	}
}

func TestGetTrends_PropagatesErrors(t *testing.T) {
	uow := seriesUow{series: &fakeSeries{err: errors.New("boom")}}
	_, err := fixedAggregator(time.Now()).GetTrends(context.Background(), uow, 7)
	assert.EqualError(t, err, "boom")
}

func seedActivity(t *testing.T, uow unitofwork.UnitOfWork, now time.Time) {
	t.Helper()
	ctx := context.Background()
	users := make([]*entity.User, 3)
	for i := range users {
		users[i] = &entity.User{Name: "u", Email: uuid.NewString() + "@example.com", CreatedAt: now.AddDate(0, 0, -20)}
		require.NoError(t, uow.UserRepository().Create(ctx, users[i]))
	}
	users[0].IsAdmin = true
	require.NoError(t, uow.UserRepository().UpdateRole(ctx, users[0].Id, true))

	category := "health"
	habits := []*entity.Habit{
		{UserId: users[0].Id, Name: "Run", Color: "#f00", Frequency: entity.HabitFrequencyDaily, HabitType: "boolean", Category: &category, IsActive: true, CurrentStreak: 4},
		{UserId: users[0].Id, Name: "Read", Color: "#0f0", Frequency: entity.HabitFrequencyWeekly, HabitType: "numeric", IsActive: true, CurrentStreak: 1},
		{UserId: users[1].Id, Name: "Old", Color: "#00f", Frequency: entity.HabitFrequencyDaily, HabitType: "boolean", Category: &category, IsArchived: true, CurrentStreak: 50},
	}
	for _, h := range habits {
		require.NoError(t, uow.HabitRepository().Create(ctx, h))
	}

	logs := []*entity.HabitLog{
		{HabitId: habits[0].Id, UserId: users[0].Id, Date: now, Completed: true, CreatedAt: now.Add(-time.Hour)},
		{HabitId: habits[0].Id, UserId: users[0].Id, Date: now, Completed: true, CreatedAt: now.AddDate(0, 0, -2)},
		{HabitId: habits[2].Id, UserId: users[1].Id, Date: now, Completed: false, CreatedAt: now.AddDate(0, 0, -20)},
		{HabitId: habits[1].Id, UserId: users[2].Id, Date: now, Completed: false, CreatedAt: now.Add(48 * time.Hour)},
	}
	for _, l := range logs {
		require.NoError(t, uow.HabitLogRepository().Create(ctx, l))
	}

	require.NoError(t, uow.BookRepository().Create(ctx, &entity.Book{UserId: users[0].Id, Title: "Dune", Status: "reading"}))
	require.NoError(t, uow.ChallengeRepository().Create(ctx, &entity.Challenge{UserId: users[1].Id, Name: "30d", Status: "active", Duration: 30, StartDate: now, EndDate: now}))
}

func TestGetStats(t *testing.T) {
	now := time.Now().UTC()
	uow := unitofwork.NewUnitOfWork(testdb.New(t))
	seedActivity(t, uow, now)

	stats, err := fixedAggregator(now).GetStats(context.Background(), uow)
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.TotalUsers)
	assert.EqualValues(t, 3, stats.TotalHabits)
	assert.EqualValues(t, 4, stats.TotalHabitLogs)
	assert.EqualValues(t, 1, stats.AdminCount)
	// the future-dated log of the third user is outside both windows
	assert.EqualValues(t, 1, stats.ActiveUsersLast7Days)
	assert.EqualValues(t, 2, stats.ActiveUsersLast30Days)
	assert.EqualValues(t, 0, stats.NewRegistrationsLast7Days)
	assert.EqualValues(t, 50, stats.AvgCompletionRate)
}

func TestGetStats_EmptyStore(t *testing.T) {
	uow := unitofwork.NewUnitOfWork(testdb.New(t))
	require.NoError(t, uow.UserRepository().Create(context.Background(), &entity.User{Name: "solo", Email: "solo@example.com"}))

	stats, err := fixedAggregator(time.Now().UTC()).GetStats(context.Background(), uow)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.AvgCompletionRate)
	assert.EqualValues(t, 1, stats.NewRegistrationsLast7Days)
}

func TestGetContentBreakdown(t *testing.T) {
	now := time.Now().UTC()
	uow := unitofwork.NewUnitOfWork(testdb.New(t))
	seedActivity(t, uow, now)

	res, err := fixedAggregator(now).GetContentBreakdown(context.Background(), uow)
	require.NoError(t, err)

	require.Len(t, res.Habits.ByFrequency, 2)
	assert.Equal(t, "daily", res.Habits.ByFrequency[0].Frequency)
	assert.EqualValues(t, 2, res.Habits.ByFrequency[0].Count)
	require.Len(t, res.Habits.ByCategory, 1)
	assert.Equal(t, "health", res.Habits.ByCategory[0].Category)
	assert.EqualValues(t, 2, res.Habits.ByCategory[0].Count)
	assert.Len(t, res.Books.ByStatus, 1)
	assert.Len(t, res.Challenges.ByStatus, 1)

	assert.Equal(t, 1.0, res.Engagement.AvgHabitsPerUser)
	assert.EqualValues(t, 50, res.Engagement.AvgCompletionRate)
	assert.Equal(t, 2.5, res.Engagement.AvgStreakLength)
	assert.EqualValues(t, 1, res.Engagement.UsersWithActiveHabits)
	assert.EqualValues(t, 3, res.Engagement.TotalUsers)
}
