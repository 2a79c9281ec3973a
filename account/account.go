// Package account
package account

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type Role int

const (
	Driver Role = iota
	Passenger
)

// Account is a registered user. The line id is the external messaging
// platform identifier and is the join key for schedule and fare rows; the
// internal id is never exposed outside the store.
type Account struct {
	ID           uuid.UUID `db:"id"`
	UserName     string    `db:"user_name"`
	PasswordHash string    `db:"password_hash"`
	Email        string    `db:"email"`
	UserType     Role      `db:"user_type"`
	LineID       string    `db:"line_id"`

	// DriverLineID is the line id of the driver this passenger rides with.
	DriverLineID sql.NullString `db:"driver_line_id"`

	CreatedAt time.Time `db:"created_at"`
}

// ScheduleLineID is the line id driver-side schedule queries run against:
// a passenger with an assigned driver reads the driver's calendar, everyone
// else reads their own.
func (a Account) ScheduleLineID() string {
	if a.DriverLineID.Valid && a.DriverLineID.String != "" {
		return a.DriverLineID.String
	}
	return a.LineID
}

func (r Role) String() string {
	return [...]string{"driver", "passenger"}[r]
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) Scan(i any) error {
	switch v := i.(type) {
	case string:
		switch v {
		case "driver":
			*r = Driver
			return nil
		case "passenger":
			*r = Passenger
			return nil
		}
	}
	return fmt.Errorf("invalid role %v", i)
}

// ParseRole maps the userType field of registration requests.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "driver":
		return Driver, true
	case "passenger":
		return Passenger, true
	}
	return 0, false
}
