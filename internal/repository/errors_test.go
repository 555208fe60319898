package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/cookfarm/pantry-service/pkg/util/errorutil"
)

func TestTranslate(t *testing.T) {
	boom := errors.New("boom")

	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(pgx.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, translate(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: pgUniqueViolation})), ErrDuplicateEmail)
	assert.ErrorIs(t, translate(&pgconn.PgError{Code: pgForeignKeyViolation}), ErrNotFound)
	assert.Equal(t, boom, translate(boom))
}

func TestNotFoundMapsTo404(t *testing.T) {
	domainErr := apperrors.ToDomainError(fmt.Errorf("load ingredient: %w", ErrNotFound))
	assert.Equal(t, apperrors.CodeNotFound, domainErr.Code)
	assert.Equal(t, 404, domainErr.HTTPStatus)
}
