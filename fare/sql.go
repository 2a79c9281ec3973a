package fare

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pick-time/carpool-backend/internal/clock"
)

var ErrNotFound = errors.New("fare record not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Upsert overwrites the balance row for the owner's current month, or
// inserts one when the month has none yet. Runs in a transaction with the
// existing row locked so two concurrent callers cannot both insert.
func (r *Repository) Upsert(ctx context.Context, lineID string, amount int, now time.Time) (created bool, err error) {
	m := clock.At(now)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var existing int64
	err = tx.GetContext(ctx, &existing, findMonthBalanceForUpdateQuery, lineID, m.Start(), m.Next())
	switch {
	case err == nil:
		if _, err = tx.ExecContext(ctx, overwriteBalanceQuery, amount, now, existing); err != nil {
			return false, err
		}
	case errors.Is(err, sql.ErrNoRows):
		if _, err = tx.ExecContext(ctx, insertBalanceQuery, lineID, amount, now); err != nil {
			return false, err
		}
		created = true
	default:
		return false, err
	}

	return created, tx.Commit()
}

const findMonthBalanceForUpdateQuery = `
SELECT id FROM fares
WHERE line_id = $1 AND update_time >= $2 AND update_time < $3
ORDER BY id ASC
LIMIT 1
FOR UPDATE
`

const overwriteBalanceQuery = `UPDATE fares SET user_fare = $1, update_time = $2 WHERE id = $3`

const insertBalanceQuery = `INSERT INTO fares (line_id, user_fare, update_time) VALUES ($1, $2, $3)`

// Summary returns every balance and adjustment row dated on or after the
// first day of the month preceding the evaluation instant. The window is
// deliberately open-ended forward and so also matches future-dated rows,
// as the source system did.
func (r *Repository) Summary(ctx context.Context, lineID string, now time.Time) ([]Balance, []Adjustment, error) {
	since := clock.At(now).Prev().Start()

	var balances []Balance
	if err := r.db.SelectContext(ctx, &balances, balancesSinceQuery, lineID, since); err != nil {
		return nil, nil, err
	}

	var adjustments []Adjustment
	if err := r.db.SelectContext(ctx, &adjustments, adjustmentsSinceQuery, lineID, since); err != nil {
		return nil, nil, err
	}

	return balances, adjustments, nil
}

const balancesSinceQuery = `
SELECT * FROM fares
WHERE line_id = $1 AND update_time >= $2
ORDER BY update_time ASC
`

const adjustmentsSinceQuery = `
SELECT * FROM fare_counts
WHERE line_id = $1 AND update_time >= $2
ORDER BY update_time ASC
`

// Report builds the per-passenger rollup for a single month.
func (r *Repository) Report(ctx context.Context, name, lineID string, m clock.Month) (MonthlyReport, error) {
	report := MonthlyReport{Name: name, FareCount: []AdjustmentView{}}

	var b Balance
	err := r.db.GetContext(ctx, &b, monthBalanceQuery, lineID, m.Start(), m.Next())
	switch {
	case err == nil:
		report.Fare = &b.UserFare
		report.Date = &b.UpdateTime
	case errors.Is(err, sql.ErrNoRows):
		// fare and date stay null
	default:
		return MonthlyReport{}, err
	}

	var adjustments []Adjustment
	if err := r.db.SelectContext(ctx, &adjustments, monthAdjustmentsQuery, lineID, m.Start(), m.Next()); err != nil {
		return MonthlyReport{}, err
	}
	for _, a := range adjustments {
		report.FareCount = append(report.FareCount, AdjustmentView{
			ID:            a.ID,
			UserFareCount: a.Amount,
			UserRemark:    a.Remark,
			Date:          a.UpdateTime,
		})
	}

	return report, nil
}

const monthBalanceQuery = `
SELECT * FROM fares
WHERE line_id = $1 AND update_time >= $2 AND update_time < $3
ORDER BY id ASC
LIMIT 1
`

const monthAdjustmentsQuery = `
SELECT * FROM fare_counts
WHERE line_id = $1 AND update_time >= $2 AND update_time < $3
ORDER BY update_time ASC
`

// AddAdjustment appends a fare adjustment dated at the given instant.
func (r *Repository) AddAdjustment(ctx context.Context, lineID string, amount int, remark string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, insertAdjustmentQuery, lineID, amount, remark, at)
	return err
}

const insertAdjustmentQuery = `
INSERT INTO fare_counts (line_id, user_fare_count, user_remark, update_time)
VALUES ($1, $2, $3, $4)
`

// DeleteAdjustment removes an adjustment by primary key, with no ownership
// check tying the row to the caller.
func (r *Repository) DeleteAdjustment(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteAdjustmentQuery, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const deleteAdjustmentQuery = `DELETE FROM fare_counts WHERE id = $1`
