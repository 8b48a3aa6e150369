package services

import "time"

// firstOfMonth returns the month key for t: midnight UTC on the first day
// of t's calendar month. Budget rows are identified by this value.
func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// monthWindow returns the half-open interval [start, next) covering t's
// calendar month. Equivalent to the inclusive first-to-last-instant month
// boundary for any timestamp, and safe for range queries on every driver.
func monthWindow(t time.Time) (start, next time.Time) {
	start = firstOfMonth(t)
	return start, start.AddDate(0, 1, 0)
}

// monthFromIndex builds the month key for a year and zero-indexed month
// (0 = January). Out-of-range indexes normalize by date arithmetic, so
// (2024, -1) is December 2023.
func monthFromIndex(year, month int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, month, 0)
}
