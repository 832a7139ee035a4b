// utils/dates.go
package utils

import "time"

// DateLayout is the calendar-date format used throughout the API and
// in notification params.
const DateLayout = "2006-01-02"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// FormatDate renders a timestamp as a YYYY-MM-DD calendar date with no
// time-of-day component.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// TargetDate computes now + daysBefore calendar days, as YYYY-MM-DD.
// This is the expiry threshold: students whose membership ends on or
// before this date get notified.
func TargetDate(now time.Time, daysBefore int) string {
	return FormatDate(now.AddDate(0, 0, daysBefore))
}
