package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound    = errors.New("account not found")
	ErrBadPassword = errors.New("password mismatch")
)

const bcryptCost = 10

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create hashes the password and inserts the account. Duplicate emails are
// not checked here; the table carries no uniqueness constraint.
func (r *Repository) Create(ctx context.Context, email, name string, role Role, password, lineID string) (Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return Account{}, err
	}

	var a Account
	err = r.db.GetContext(ctx, &a, createAccountQuery, uuid.New(), name, string(hash), email, role.String(), lineID)
	return a, err
}

const createAccountQuery = `
INSERT INTO accounts (id, user_name, password_hash, email, user_type, line_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
RETURNING *
`

func (r *Repository) GetByEmail(ctx context.Context, email string) (Account, error) {
	var a Account
	err := r.db.GetContext(ctx, &a, getByEmailQuery, email)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	return a, err
}

const getByEmailQuery = `SELECT * FROM accounts WHERE email = $1`

func (r *Repository) GetByLineID(ctx context.Context, lineID string) (Account, error) {
	var a Account
	err := r.db.GetContext(ctx, &a, getByLineIDQuery, lineID)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	return a, err
}

const getByLineIDQuery = `SELECT * FROM accounts WHERE line_id = $1`

// Authenticate looks the account up by email and compares the password
// against the stored hash.
func (r *Repository) Authenticate(ctx context.Context, email, password string) (Account, error) {
	a, err := r.GetByEmail(ctx, email)
	if err != nil {
		return Account{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return Account{}, ErrBadPassword
	}
	return a, nil
}

// PassengersOf lists the accounts assigned to a driver's line id.
func (r *Repository) PassengersOf(ctx context.Context, driverLineID string) ([]Account, error) {
	var passengers []Account
	err := r.db.SelectContext(ctx, &passengers, passengersOfQuery, driverLineID)
	return passengers, err
}

const passengersOfQuery = `SELECT * FROM accounts WHERE driver_line_id = $1 ORDER BY user_name ASC`
