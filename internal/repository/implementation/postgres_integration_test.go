package implementation

import (
	"context"
	"os"
	"testing"
	"time"

	"habit-tracker-be/internal/model"
	"habit-tracker-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a disposable database; every write is rolled back.
func TestTimeSeriesAggregator_Postgres(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	tx := db.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() { tx.Rollback() })

	ctx := context.Background()
	now := time.Now().UTC()
	u := &model.User{Id: uuid.New(), Name: "PG", Email: uuid.NewString() + "@example.com", CreatedAt: now}
	require.NoError(t, tx.Create(u).Error)

	agg := NewTimeSeriesAggregator(tx)
	since := now.Add(-24 * time.Hour)
	rows, err := agg.NewUsersByDay(ctx, since)
	require.NoError(t, err)

	today := now.Format(bucketLayout)
	var found bool
	for _, r := range rows {
		if r.Day.Format(bucketLayout) == today {
			found = true
			assert.GreaterOrEqual(t, r.Count, int64(1))
		}
	}
	assert.True(t, found, "expected a bucket for %s", today)
}
