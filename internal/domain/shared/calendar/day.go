// Package calendar provides UTC calendar-day arithmetic.
// All bookkeeping buckets rows by UTC day regardless of the wall clock
// where the entry was recorded, so every helper here works on days pinned
// to midnight UTC.
package calendar

import (
	"fmt"
	"time"
)

// KeyLayout is the canonical day key format used across reports and maps.
const KeyLayout = "2006-01-02"

// Day represents a single UTC calendar day (midnight-aligned).
type Day struct {
	t time.Time
}

// ParseDay parses a "YYYY-MM-DD" string into a Day.
func ParseDay(value string) (Day, error) {
	t, err := time.ParseInLocation(KeyLayout, value, time.UTC)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return Day{t: t}, nil
}

// DayOf truncates an arbitrary timestamp to its UTC calendar day.
func DayOf(t time.Time) Day {
	u := t.UTC()
	return Day{t: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

// Today returns the current UTC calendar day.
func Today() Day {
	return DayOf(time.Now())
}

// Time returns the day as a midnight-UTC time.Time.
func (d Day) Time() time.Time {
	return d.t
}

// Key returns the "YYYY-MM-DD" key for this day.
func (d Day) Key() string {
	return d.t.Format(KeyLayout)
}

// KeyOf returns the day key of an arbitrary timestamp.
func KeyOf(t time.Time) string {
	return DayOf(t).Key()
}

// AddDays returns the day shifted by n calendar days.
func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

// AddMonths returns the day shifted by n calendar months.
// Overflow follows time.AddDate semantics (Jan 31 + 1 month = Mar 2/3),
// which matches the JavaScript Date.UTC behavior the books were kept with.
func (d Day) AddMonths(n int) Day {
	return Day{t: d.t.AddDate(0, n, 0)}
}

// StartOfMonth returns the first day of this day's month.
func (d Day) StartOfMonth() Day {
	return Day{t: time.Date(d.t.Year(), d.t.Month(), 1, 0, 0, 0, 0, time.UTC)}
}

// StartOfWeek returns the Monday of this day's week.
func (d Day) StartOfWeek() Day {
	weekday := d.t.Weekday()
	diff := int(time.Monday - weekday)
	if weekday == time.Sunday {
		diff = -6
	}
	return d.AddDays(diff)
}

// Before reports whether d falls before other.
func (d Day) Before(other Day) bool {
	return d.t.Before(other.t)
}

// After reports whether d falls after other.
func (d Day) After(other Day) bool {
	return d.t.After(other.t)
}

// Equal reports whether both values are the same calendar day.
func (d Day) Equal(other Day) bool {
	return d.t.Equal(other.t)
}

// IsZero reports whether the day is the zero value.
func (d Day) IsZero() bool {
	return d.t.IsZero()
}

// Bounds returns the [start, end) time range covering exactly this day,
// for use in range queries against timestamp columns.
func (d Day) Bounds() (start, end time.Time) {
	return d.t, d.AddDays(1).t
}

// Range enumerates the days in [start, endExclusive). An empty or inverted
// range yields no days.
func Range(start, endExclusive Day) []Day {
	var days []Day
	for current := start; current.Before(endExclusive); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}
