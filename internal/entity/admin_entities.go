package entity

import "time"

// DayCount is one bucket of a daily time series.
type DayCount struct {
	Day   time.Time
	Count int64
}

// DayCompletion holds the total and completed log counts for one day.
type DayCompletion struct {
	Day       time.Time
	Total     int64
	Completed int64
}

// GroupCount is one row of a GROUP BY ... COUNT(*) query.
type GroupCount struct {
	Key   string
	Count int64
}
