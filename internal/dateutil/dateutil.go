// Package dateutil provides calendar-day arithmetic for the snapshot
// series. All dates are normalized to midnight UTC so that map keys and
// comparisons behave.
package dateutil

import "time"

// Layout is the canonical date format used in storage and CLI flags.
const Layout = "2006-01-02"

// DateOnly truncates a timestamp to its calendar date at midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EachDay returns every calendar day from start through end inclusive.
// Returns nil when end precedes start.
func EachDay(start, end time.Time) []time.Time {
	start, end = DateOnly(start), DateOnly(end)
	if end.Before(start) {
		return nil
	}
	days := make([]time.Time, 0, DaysBetween(start, end)+1)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

// DaysBetween returns the number of whole days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(DateOnly(end).Sub(DateOnly(start)).Hours() / 24)
}

// IsWeekday reports whether the day falls Monday through Friday.
func IsWeekday(day time.Time) bool {
	wd := day.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// BusinessDaysBetween counts weekdays in [start, end] inclusive.
func BusinessDaysBetween(start, end time.Time) int {
	count := 0
	for day := DateOnly(start); !day.After(DateOnly(end)); day = day.AddDate(0, 0, 1) {
		if IsWeekday(day) {
			count++
		}
	}
	return count
}
