package services

import (
	"testing"
	"time"
)

func TestWeekEnd(t *testing.T) {
	cases := []struct {
		start string
		want  string
	}{
		{"2026-09-07", "2026-09-13"},
		// Year boundary: the week is a plain 7-day span, no ISO-week rules.
		{"2025-12-29", "2026-01-04"},
		// Leap February.
		{"2024-02-26", "2024-03-03"},
	}

	for _, tc := range cases {
		start := mustDate(t, tc.start)
		if got := DateKey(WeekEnd(start)); got != tc.want {
			t.Errorf("WeekEnd(%s) = %s, want %s", tc.start, got, tc.want)
		}
	}
}

func TestDateKey_DropsTimeOfDay(t *testing.T) {
	ts := time.Date(2026, 9, 7, 23, 59, 59, 0, time.UTC)
	if got := DateKey(ts); got != "2026-09-07" {
		t.Errorf("DateKey = %s, want 2026-09-07", got)
	}
}
