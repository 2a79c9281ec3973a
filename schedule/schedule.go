// Package schedule maintains the per-month availability calendar shared by
// drivers and passengers. Both roles use the same table and the same
// replace/merge rules, discriminated by the owner_role column.
package schedule

import "time"

type Role string

const (
	Driver    Role = "driver"
	Passenger Role = "passenger"
)

// Entry kinds. Reserved entries ("I will drive/ride then") are unique per
// owner and month; excluded entries ("not during this range") are merged on
// overlap.
const (
	KindExcluded = 0
	KindReserved = 1
)

type Entry struct {
	ID        int64     `db:"id" json:"id"`
	OwnerRole Role      `db:"owner_role" json:"-"`
	LineID    string    `db:"line_id" json:"line_id"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Kind      int       `db:"reverse_type" json:"reverse_type"`
	Note      string    `db:"note" json:"note"`
	PassLimit *int      `db:"pass_limit" json:"pass_limit"`
}

// Overlaps reports whether the entry's date range intersects [start, end],
// boundaries included.
func (e Entry) Overlaps(start, end time.Time) bool {
	return !(e.EndDate.Before(start) || e.StartDate.After(end))
}

// Partition splits entries by kind. Empty partitions come back nil, which
// the API deliberately serializes as null rather than an empty list.
func Partition(entries []Entry) (reserved, excluded []Entry) {
	for _, e := range entries {
		switch e.Kind {
		case KindReserved:
			reserved = append(reserved, e)
		case KindExcluded:
			excluded = append(excluded, e)
		}
	}
	return reserved, excluded
}
