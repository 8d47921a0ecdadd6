// Package timeseries provides lookups over date-ordered snapshot
// sequences. A missing entry between two dates means the last known
// value still applies, so every monthly rollup reduces to "latest entry
// with date on or before the cutoff".
package timeseries

import "time"

// LatestOnOrBefore returns the most recent entry whose date is on or
// before cutoff. Entries must be sorted by date in ascending order.
// The second return value is false when no entry qualifies.
func LatestOnOrBefore[T any](entries []T, cutoff time.Time, date func(T) time.Time) (T, bool) {
	for i := len(entries) - 1; i >= 0; i-- {
		if !date(entries[i]).After(cutoff) {
			return entries[i], true
		}
	}
	var zero T
	return zero, false
}

// MonthEnd returns the last calendar day of the given month.
func MonthEnd(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}

// TruncateToMonth maps a date to the first day of its month, the key
// used when bucketing snapshots and transactions per month.
func TruncateToMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}
