package schedule

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/pick-time/carpool-backend/internal/clock"
)

var ErrNotFound = errors.New("schedule entry not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

const dateFormat = "2006-01-02"

// Outcome reports what Submit did with the entry.
type Outcome struct {
	Updated bool
	// ID of the row that was overwritten, when Updated.
	ID int64
}

// Submit applies the reservation rules for a new entry inside a single
// transaction:
//
//   - reserved (1): at most one reserved entry per owner and calendar month
//     of the start date; an existing one is overwritten field for field.
//   - excluded (0): existing excluded entries overlapping the new range are
//     deleted, then the new entry is inserted.
//
// A kind outside {0, 1} writes nothing; callers keep the source's
// success-shaped response for that case.
func (r *Repository) Submit(ctx context.Context, e Entry) (Outcome, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return Outcome{}, err
	}
	defer tx.Rollback()

	var out Outcome

	switch e.Kind {
	case KindReserved:
		month := clock.Month{Year: e.StartDate.Year(), Month: e.StartDate.Month()}

		var existing int64
		err = tx.GetContext(ctx, &existing, findReservedInMonthQuery,
			e.OwnerRole, e.LineID, month.Start().Format(dateFormat), month.LastDay().Format(dateFormat))
		switch {
		case err == nil:
			_, err = tx.ExecContext(ctx, overwriteEntryQuery,
				e.StartDate.Format(dateFormat), e.EndDate.Format(dateFormat), e.Kind, e.Note, e.PassLimit, existing)
			if err != nil {
				return Outcome{}, err
			}
			out = Outcome{Updated: true, ID: existing}
		case errors.Is(err, sql.ErrNoRows):
			if err = insertEntry(ctx, tx, e); err != nil {
				return Outcome{}, err
			}
		default:
			return Outcome{}, err
		}

	case KindExcluded:
		var overlapping []int64
		err = tx.SelectContext(ctx, &overlapping, findOverlappingExcludedQuery,
			e.OwnerRole, e.LineID, e.StartDate.Format(dateFormat), e.EndDate.Format(dateFormat))
		if err != nil {
			return Outcome{}, err
		}
		for _, id := range overlapping {
			if _, err = tx.ExecContext(ctx, deleteEntryQuery, id); err != nil {
				return Outcome{}, err
			}
		}
		if err = insertEntry(ctx, tx, e); err != nil {
			return Outcome{}, err
		}
	}

	return out, tx.Commit()
}

func insertEntry(ctx context.Context, tx *sqlx.Tx, e Entry) error {
	_, err := tx.ExecContext(ctx, insertEntryQuery,
		e.OwnerRole, e.LineID, e.StartDate.Format(dateFormat), e.EndDate.Format(dateFormat), e.Kind, e.Note, e.PassLimit)
	return err
}

const findReservedInMonthQuery = `
SELECT id FROM schedule_entries
WHERE owner_role = $1
  AND line_id = $2
  AND reverse_type = 1
  AND start_date BETWEEN $3 AND $4
ORDER BY id ASC
LIMIT 1
FOR UPDATE
`

const findOverlappingExcludedQuery = `
SELECT id FROM schedule_entries
WHERE owner_role = $1
  AND line_id = $2
  AND reverse_type = 0
  AND NOT (end_date < $3::date OR start_date > $4::date)
FOR UPDATE
`

const overwriteEntryQuery = `
UPDATE schedule_entries
SET start_date = $1::date, end_date = $2::date, reverse_type = $3, note = $4, pass_limit = $5
WHERE id = $6
`

const insertEntryQuery = `
INSERT INTO schedule_entries (owner_role, line_id, start_date, end_date, reverse_type, note, pass_limit)
VALUES ($1, $2, $3::date, $4::date, $5, $6, $7)
`

// MonthEntries fetches every entry whose start date falls in the month,
// boundaries inclusive, sorted by start date.
func (r *Repository) MonthEntries(ctx context.Context, role Role, lineID string, m clock.Month) ([]Entry, error) {
	var entries []Entry
	err := r.db.SelectContext(ctx, &entries, monthEntriesQuery,
		role, lineID, m.Start().Format(dateFormat), m.LastDay().Format(dateFormat))
	return entries, err
}

const monthEntriesQuery = `
SELECT * FROM schedule_entries
WHERE owner_role = $1
  AND line_id = $2
  AND start_date BETWEEN $3 AND $4
ORDER BY start_date ASC
`

// Delete removes an entry by primary key. No ownership check ties the row
// to the caller; see the regression test in the acceptance suite.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteEntryQuery, id)
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

const deleteEntryQuery = `DELETE FROM schedule_entries WHERE id = $1`
