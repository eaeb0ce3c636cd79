package implementation

import (
	"context"
	"fmt"
	"time"

	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/repository/contract"

	"gorm.io/gorm"
)

const bucketLayout = "2006-01-02"

// GormTimeSeriesAggregator buckets rows by UTC day. Postgres uses date_trunc,
// SQLite uses strftime on the stored timestamp text.
type GormTimeSeriesAggregator struct {
	db *gorm.DB
}

func NewTimeSeriesAggregator(db *gorm.DB) contract.TimeSeriesAggregator {
	return &GormTimeSeriesAggregator{db: db}
}

func (a *GormTimeSeriesAggregator) isPostgres() bool {
	return a.db.Dialector != nil && a.db.Dialector.Name() == "postgres"
}

// timestampDay buckets a timestamptz column by its UTC day.
func (a *GormTimeSeriesAggregator) timestampDay(column string) string {
	if a.isPostgres() {
		return fmt.Sprintf("to_char(date_trunc('day', %s AT TIME ZONE 'UTC'), 'YYYY-MM-DD')", column)
	}
	return fmt.Sprintf("strftime('%%Y-%%m-%%d', %s)", column)
}

// dateDay buckets a DATE column.
func (a *GormTimeSeriesAggregator) dateDay(column string) string {
	if a.isPostgres() {
		return fmt.Sprintf("to_char(date_trunc('day', %s), 'YYYY-MM-DD')", column)
	}
	return fmt.Sprintf("strftime('%%Y-%%m-%%d', %s)", column)
}

type dayCountRow struct {
	Bucket string
	Total  int64
}

type dayCompletionRow struct {
	Bucket    string
	Total     int64
	Completed int64
}

func (a *GormTimeSeriesAggregator) NewUsersByDay(ctx context.Context, since time.Time) ([]entity.DayCount, error) {
	var rows []dayCountRow
	query := fmt.Sprintf(`
		SELECT %s AS bucket, COUNT(*) AS total
		FROM users
		WHERE created_at >= ?
		GROUP BY bucket
		ORDER BY bucket ASC
	`, a.timestampDay("created_at"))

	if err := a.db.WithContext(ctx).Raw(query, since.UTC()).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("new users by day: %w", err)
	}
	return toDayCounts(rows)
}

func (a *GormTimeSeriesAggregator) ActiveUsersByDay(ctx context.Context, since time.Time) ([]entity.DayCount, error) {
	var rows []dayCountRow
	query := fmt.Sprintf(`
		SELECT %s AS bucket, COUNT(DISTINCT user_id) AS total
		FROM habit_logs
		WHERE date >= ?
		GROUP BY bucket
		ORDER BY bucket ASC
	`, a.dateDay("date"))

	if err := a.db.WithContext(ctx).Raw(query, since.UTC()).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("active users by day: %w", err)
	}
	return toDayCounts(rows)
}

func (a *GormTimeSeriesAggregator) CompletionByDay(ctx context.Context, since time.Time) ([]entity.DayCompletion, error) {
	var rows []dayCompletionRow
	query := fmt.Sprintf(`
		SELECT %s AS bucket,
			COUNT(*) AS total,
			SUM(CASE WHEN completed THEN 1 ELSE 0 END) AS completed
		FROM habit_logs
		WHERE date >= ?
		GROUP BY bucket
		ORDER BY bucket ASC
	`, a.dateDay("date"))

	if err := a.db.WithContext(ctx).Raw(query, since.UTC()).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("completion by day: %w", err)
	}

	result := make([]entity.DayCompletion, 0, len(rows))
	for _, row := range rows {
		day, err := time.Parse(bucketLayout, row.Bucket)
		if err != nil {
			return nil, fmt.Errorf("parse bucket %q: %w", row.Bucket, err)
		}
		result = append(result, entity.DayCompletion{Day: day, Total: row.Total, Completed: row.Completed})
	}
	return result, nil
}

func toDayCounts(rows []dayCountRow) ([]entity.DayCount, error) {
	result := make([]entity.DayCount, 0, len(rows))
	for _, row := range rows {
		day, err := time.Parse(bucketLayout, row.Bucket)
		if err != nil {
			return nil, fmt.Errorf("parse bucket %q: %w", row.Bucket, err)
		}
		result = append(result, entity.DayCount{Day: day, Count: row.Total})
	}
	return result, nil
}
