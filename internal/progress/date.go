package progress

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date in YYYY-MM-DD form. Time of day never matters
// for day rollover or streaks, so dates are kept as plain strings; the
// layout sorts lexicographically in chronological order.
type Date string

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// ParseDate validates s and returns it as a Date.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date(s), nil
}

// IsZero reports whether d is unset.
func (d Date) IsZero() bool { return d == "" }

// Time returns midnight UTC of d, or the zero time if d is unset or invalid.
func (d Date) Time() time.Time {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the date n calendar days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	t := d.Time()
	if t.IsZero() {
		return d
	}
	return DateOf(t.AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d < other }

// DaysBetween returns the number of calendar days from `from` to `to`.
// It is negative when to precedes from.
func DaysBetween(from, to Date) int {
	a, b := from.Time(), to.Time()
	if a.IsZero() || b.IsZero() {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}

func (d Date) String() string { return string(d) }
