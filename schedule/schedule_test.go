package schedule

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	e := Entry{StartDate: day(10), EndDate: day(15)}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"inside", day(11), day(12), true},
		{"covers", day(1), day(31), true},
		{"touches start", day(5), day(10), true},
		{"touches end", day(15), day(20), true},
		{"before", day(1), day(9), false},
		{"after", day(16), day(20), false},
	}

	for _, tc := range cases {
		if got := e.Overlaps(tc.start, tc.end); got != tc.want {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestPartition(t *testing.T) {
	entries := []Entry{
		{ID: 1, Kind: KindReserved},
		{ID: 2, Kind: KindExcluded},
		{ID: 3, Kind: KindReserved},
		{ID: 4, Kind: 7}, // out-of-range kinds land in neither partition
	}

	reserved, excluded := Partition(entries)

	if len(reserved) != 2 || reserved[0].ID != 1 || reserved[1].ID != 3 {
		t.Errorf("unexpected reserved partition: %+v", reserved)
	}
	if len(excluded) != 1 || excluded[0].ID != 2 {
		t.Errorf("unexpected excluded partition: %+v", excluded)
	}
}

func TestPartition_EmptyPartitionsAreNil(t *testing.T) {
	reserved, excluded := Partition([]Entry{{ID: 1, Kind: KindReserved}})

	if reserved == nil {
		t.Errorf("expected non-nil reserved partition")
	}
	if excluded != nil {
		t.Errorf("expected nil excluded partition, got %+v", excluded)
	}

	reserved, excluded = Partition(nil)
	if reserved != nil || excluded != nil {
		t.Errorf("expected both partitions nil for no entries")
	}
}
