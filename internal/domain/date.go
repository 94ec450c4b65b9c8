package domain

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used for every stored date.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO date. time.Parse rejects impossible calendar
// dates such as 2023-02-30.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateOf truncates t to its calendar date at UTC midnight, keeping the
// year/month/day observed in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddYear returns the same calendar day one year later. February 29
// rolls over to March 1, matching SQLite's date(x, '+1 year').
func AddYear(t time.Time) time.Time {
	return t.AddDate(1, 0, 0)
}
