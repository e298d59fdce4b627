// Package recurrence holds the pure calendar arithmetic behind recurring
// tasks and the day/week boundaries shared by the task views.
package recurrence

import "time"

type Pattern string

const (
	PatternNone    Pattern = "none"
	PatternDaily   Pattern = "daily"
	PatternWeekly  Pattern = "weekly"
	PatternMonthly Pattern = "monthly"
	PatternYearly  Pattern = "yearly"
)

func (p Pattern) Valid() bool {
	switch p {
	case PatternNone, PatternDaily, PatternWeekly, PatternMonthly, PatternYearly:
		return true
	}
	return false
}

// Bucket classifies a due date relative to now.
type Bucket int

const (
	BucketNone Bucket = iota
	BucketToday
	BucketThisWeek
)

// NextDueDate returns current advanced by interval units of the pattern's
// period. Month and year steps clamp to the last valid day of the target
// month (Jan 31 + 1 month = Feb 29 in a leap year) instead of overflowing
// into the next month. An unrecognized pattern or PatternNone returns
// current unchanged; an interval below 1 is treated as 1.
func NextDueDate(current time.Time, pattern Pattern, interval int) time.Time {
	if interval < 1 {
		interval = 1
	}

	switch pattern {
	case PatternDaily:
		return current.AddDate(0, 0, interval)
	case PatternWeekly:
		return current.AddDate(0, 0, 7*interval)
	case PatternMonthly:
		return addMonthsClamped(current, interval)
	case PatternYearly:
		return addMonthsClamped(current, 12*interval)
	default:
		return current
	}
}

// IsOverdue reports whether due falls on a calendar day strictly before
// now's, in now's location. Time of day is ignored.
func IsOverdue(due, now time.Time) bool {
	return StartOfDay(due).Before(StartOfDay(now))
}

// Classify buckets a due date as today, within the current Sunday-to-Saturday
// week, or neither. Today wins over ThisWeek.
func Classify(d, now time.Time) Bucket {
	if sameDay(d, now) {
		return BucketToday
	}
	if !d.Before(StartOfWeek(now)) && !d.After(EndOfWeek(now)) {
		return BucketThisWeek
	}
	return BucketNone
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek returns midnight of the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

func EndOfWeek(t time.Time) time.Time {
	return EndOfDay(StartOfWeek(t).AddDate(0, 0, 6))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + months
	ny := y + total/12
	nm := time.Month(total%12 + 1)

	if last := daysIn(ny, nm); d > last {
		d = last
	}
	return time.Date(ny, nm, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
