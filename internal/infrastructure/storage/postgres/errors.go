package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"stockbook/internal/core/apperror"
)

// PostgreSQL error codes mapped to application errors.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// TranslateError maps constraint violations to application errors and wraps
// anything else with op. A nil err stays nil.
func TranslateError(err error, op, table string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return apperror.NewIntegrity("record is referenced by or refers to missing data").
				WithDetail("table", table).
				WithDetail("constraint", pgErr.ConstraintName).
				WithCause(err)
		case pgUniqueViolation:
			return apperror.NewDuplicate(table, pgErr.ConstraintName, pgErr.Detail).
				WithCause(err)
		case pgCheckViolation:
			return apperror.NewValidation("value rejected by database constraint").
				WithDetail("table", table).
				WithDetail("constraint", pgErr.ConstraintName).
				WithCause(err)
		}
	}
	return fmt.Errorf("%s %s: %w", op, table, err)
}
