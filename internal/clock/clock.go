// Package clock owns the fixed UTC+8 calendar arithmetic used for every
// "current month" / "last month" computation. All functions take an explicit
// instant so callers never reach for time.Now directly.
package clock

import "time"

// Business is the timezone all month boundaries are evaluated in. The service
// runs for a single UTC+8 user base, so the offset is fixed rather than
// derived from the caller.
var Business = time.FixedZone("UTC+8", 8*60*60)

// Month identifies a calendar month in the business timezone.
type Month struct {
	Year  int
	Month time.Month
}

// At returns the month containing the given instant, evaluated in UTC+8.
func At(instant time.Time) Month {
	t := instant.In(Business)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Prev returns the immediately preceding calendar month.
func (m Month) Prev() Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, Business).AddDate(0, -1, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Start is midnight on the first day of the month.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, Business)
}

// Next is midnight on the first day of the following month, i.e. the
// exclusive upper bound of the month.
func (m Month) Next() time.Time {
	return m.Start().AddDate(0, 1, 0)
}

// LastDay is the final calendar day of the month, for inclusive date-range
// queries (BETWEEN start AND last day).
func (m Month) LastDay() time.Time {
	return m.Next().AddDate(0, 0, -1)
}

// Select resolves a month selector from the query string. Anything other
// than "last" means the current month, matching the source behavior.
func Select(instant time.Time, selector string) Month {
	m := At(instant)
	if selector == "last" {
		return m.Prev()
	}
	return m
}
