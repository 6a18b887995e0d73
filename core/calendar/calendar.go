// Package calendar implements the date arithmetic behind the dashboard
// calendar: local-day boundaries, Monday-based weeks, month windows and
// day-granularity range overlap. All functions are pure; callers supply
// the reference date ("today") explicitly.
package calendar

import "time"

// StartOfDay returns d at local midnight.
func StartOfDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, d.Location())
}

// EndOfDay returns the last instant of d's calendar day (23:59:59.999).
func EndOfDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 23, 59, 59, int(999*time.Millisecond), d.Location())
}

// AddDays shifts d by n calendar days; n may be negative.
func AddDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// StartOfWeekMonday returns the Monday on/before d, at local midnight.
func StartOfWeekMonday(d time.Time) time.Time {
	x := StartOfDay(d)
	offset := (int(x.Weekday()) + 6) % 7 // Monday -> 0 ... Sunday -> 6
	return AddDays(x, -offset)
}

// StartOfMonth returns the first day of d's month at local midnight.
func StartOfMonth(d time.Time) time.Time {
	y, m, _ := d.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, d.Location())
}

// EndOfMonth returns the last day of d's month at local midnight.
func EndOfMonth(d time.Time) time.Time {
	y, m, _ := d.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, d.Location())
}

// AddMonths shifts d by n months. When the day-of-month overflows the
// target month's length the date rolls over into the next month
// (time.AddDate semantics); accepted as is.
func AddMonths(d time.Time, n int) time.Time {
	return d.AddDate(0, n, 0)
}

// IsSameDay reports whether a and b fall on the same calendar date,
// regardless of time-of-day.
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Days enumerates every calendar day from start to end, inclusive.
// Returns nil when start is after end.
func Days(start, end time.Time) []time.Time {
	start, end = StartOfDay(start), StartOfDay(end)
	var days []time.Time
	for d := start; !d.After(end); d = AddDays(d, 1) {
		days = append(days, d)
	}
	return days
}

// OverlapsDay reports whether the inclusive range [start, end] overlaps
// the given calendar day. A zero end means a single-instant range ending
// at start. An end earlier than start is passed through arithmetically
// and simply never overlaps.
func OverlapsDay(start, end, day time.Time) bool {
	if end.IsZero() {
		end = start
	}
	return !start.After(EndOfDay(day)) && !end.Before(StartOfDay(day))
}
