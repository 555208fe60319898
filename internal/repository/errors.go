package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/cookfarm/pantry-service/pkg/util/errorutil"
)

var (
	// ErrNotFound is returned when a lookup by key matches no record.
	ErrNotFound = apperrors.ErrRecordNotFound
	// ErrDuplicateEmail is returned when a user with the same email already exists.
	ErrDuplicateEmail = errors.New("email already registered")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// validID reports whether id can be a stored surrogate key.
// Malformed identifiers never match a record.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicateEmail
		case pgForeignKeyViolation:
			return ErrNotFound
		}
	}
	return err
}
