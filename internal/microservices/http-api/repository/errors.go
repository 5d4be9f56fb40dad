package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Constraint names shared by the migrations and the in-memory store.
const (
	ConstraintUsersUsername  = "uq_users_username"
	ConstraintUsersEmail     = "uq_users_email"
	ConstraintMediaExternal  = "uq_media_external_type"
	ConstraintUserMediaOwner = "uq_user_media_user_media"
)

const pgUniqueViolation = "23505"

// ErrNotFound is returned when no row matches the lookup. Callers translate it
// into their own not-found error.
var ErrNotFound = errors.New("record not found")

// DuplicateError reports a unique constraint violation.
type DuplicateError struct {
	Constraint string
	Err        error
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate key violates %s", e.Constraint)
}

func (e *DuplicateError) Unwrap() error { return e.Err }

// IsDuplicate reports whether err is a unique violation, and on which constraint.
func IsDuplicate(err error) (string, bool) {
	var dup *DuplicateError
	if errors.As(err, &dup) {
		return dup.Constraint, true
	}
	return "", false
}

// translate maps driver errors onto the repository's error values.
// op is prefixed for context like the other wrapped errors in this package.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &DuplicateError{Constraint: pgErr.ConstraintName, Err: err}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &DuplicateError{Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}
