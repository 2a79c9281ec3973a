// Package fare is the monthly fare ledger: one current balance per owner
// per month plus an append-only log of adjustments.
package fare

import "time"

// Balance is the single current fare amount for an owner's month. The
// upsert path guarantees at most one logical row per (line id, month).
type Balance struct {
	ID         int64     `db:"id" json:"id"`
	LineID     string    `db:"line_id" json:"line_id"`
	UserFare   int       `db:"user_fare" json:"user_fare"`
	UpdateTime time.Time `db:"update_time" json:"update_time"`
}

// Adjustment is an append-only correction or annotation against a balance,
// independently deletable by id.
type Adjustment struct {
	ID         int64     `db:"id" json:"id"`
	LineID     string    `db:"line_id" json:"line_id"`
	Amount     int       `db:"user_fare_count" json:"user_fare_count"`
	Remark     string    `db:"user_remark" json:"user_remark"`
	UpdateTime time.Time `db:"update_time" json:"update_time"`
}

// MonthlyReport is the per-passenger rollup a driver sees for one month.
// Fare and Date are null when the month has no balance row; FareCount is
// always a list.
type MonthlyReport struct {
	Name      string           `json:"name"`
	Fare      *int             `json:"fare"`
	Date      *time.Time       `json:"date"`
	FareCount []AdjustmentView `json:"fareCount"`
}

type AdjustmentView struct {
	ID            int64     `json:"id"`
	UserFareCount int       `json:"userFareCount"`
	UserRemark    string    `json:"userRemark"`
	Date          time.Time `json:"date"`
}
