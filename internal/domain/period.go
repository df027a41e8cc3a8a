package domain

import "time"

// DefaultUserWindowDays is the trailing window used for a user's own entries.
const DefaultUserWindowDays = 7

// WeekStart returns the most recent Monday 00:00:00 at or before t, in t's location.
func WeekStart(t time.Time) time.Time {
	// time.Weekday counts from Sunday; shift so Monday is 0.
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MonthStart returns the first day of t's month at 00:00:00 in t's location.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// DaysBefore returns t shifted back by the given number of days.
// A non-positive value falls back to DefaultUserWindowDays.
func DaysBefore(t time.Time, days int) time.Time {
	if days <= 0 {
		days = DefaultUserWindowDays
	}
	return t.AddDate(0, 0, -days)
}
