// Package dates centralizes the calendar-date policy for assigned dates:
// every stored date is midnight UTC, and ordering is decided on calendar
// components so local-timezone inputs cannot shift a task across days.
package dates

import "time"

const Layout = "2006-01-02"

// Normalize strips the time of day, keeping the calendar date in UTC.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today is the current local calendar day, normalized.
func Today() time.Time {
	return Normalize(time.Now())
}

func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Normalize(t), nil
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

// Before reports whether a falls on an earlier calendar day than b.
func Before(a, b time.Time) bool {
	return Normalize(a).Before(Normalize(b))
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Normalize(a).Equal(Normalize(b))
}
