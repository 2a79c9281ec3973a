package account

import (
	"database/sql"
	"testing"

	"github.com/goccy/go-json"
)

func TestScheduleLineID(t *testing.T) {
	withDriver := Account{
		LineID:       "U-passenger",
		DriverLineID: sql.NullString{String: "U-driver", Valid: true},
	}
	if got := withDriver.ScheduleLineID(); got != "U-driver" {
		t.Errorf("expected assigned driver's line id, got %s", got)
	}

	unassigned := Account{LineID: "U-solo"}
	if got := unassigned.ScheduleLineID(); got != "U-solo" {
		t.Errorf("expected own line id, got %s", got)
	}
}

func TestRole_JSON(t *testing.T) {
	b, err := json.Marshal(Driver)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"driver"` {
		t.Errorf(`expected "driver", got %s`, b)
	}
}

func TestRole_Scan(t *testing.T) {
	var r Role
	if err := r.Scan("passenger"); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if r != Passenger {
		t.Errorf("expected Passenger, got %v", r)
	}

	if err := r.Scan("pilot"); err == nil {
		t.Errorf("expected error for unknown role")
	}
}

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole("driver"); !ok || r != Driver {
		t.Errorf("driver: got %v %v", r, ok)
	}
	if _, ok := ParseRole("admin"); ok {
		t.Errorf("admin should not parse")
	}
}
