package services

import "time"

// dateKeyLayout is the canonical calendar-date key format used for
// WeeklyCalendar day keys and week boundaries. No time-of-day or timezone
// component: two rows on the same calendar date always share a key.
const dateKeyLayout = "2006-01-02"

// DateKey normalizes a timestamp to its canonical YYYY-MM-DD key.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// WeekEnd returns the inclusive end of the 7-day week starting at weekStart.
func WeekEnd(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, 6)
}
