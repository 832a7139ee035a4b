package utils

import (
	"testing"
	"time"
)

func TestTargetDate(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		daysBefore int
		want       string
	}{
		{"zero days", time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC), 0, "2024-01-01"},
		{"ten days", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 10, "2024-01-11"},
		{"default week", time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC), 7, "2024-06-08"},
		{"month rollover", time.Date(2024, 1, 28, 0, 0, 0, 0, time.UTC), 7, "2024-02-04"},
		{"leap day", time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC), 3, "2024-02-29"},
		{"year rollover", time.Date(2023, 12, 28, 0, 0, 0, 0, time.UTC), 7, "2024-01-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TargetDate(tt.now, tt.daysBefore); got != tt.want {
				t.Errorf("TargetDate(%v, %d) = %q, want %q", tt.now, tt.daysBefore, got, tt.want)
			}
		})
	}
}

func TestFormatDateDropsTimeOfDay(t *testing.T) {
	ts := time.Date(2024, 3, 15, 18, 45, 12, 0, time.UTC)
	if got := FormatDate(ts); got != "2024-03-15" {
		t.Errorf("FormatDate = %q, want 2024-03-15", got)
	}
}

func TestBeginningOfDay(t *testing.T) {
	ts := time.Date(2024, 3, 15, 18, 45, 12, 999, time.UTC)
	got := BeginningOfDay(ts)
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("BeginningOfDay = %v, want %v", got, want)
	}
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 11, 1, 0, 0, 0, time.UTC)
	if got := DaysBetween(start, end); got != 10 {
		t.Errorf("DaysBetween = %d, want 10", got)
	}
}
