package utils

import "time"

// TruncateToDay drops the time-of-day component in UTC.
// Daily bars are keyed by calendar date only.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
