package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/phrazzld/vocabvault/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"
)

// mapWriteError wraps a database write error in store.ErrSaveFailed, naming
// the violated constraint when PostgreSQL reports one. Constraint details go
// to the wrapped message only; the sentinel is what callers match on.
func mapWriteError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %s: unique violation (%s): %v",
				store.ErrSaveFailed, op, pgErr.ConstraintName, err)
		case checkViolationCode:
			return fmt.Errorf("%w: %s: check violation (%s): %v",
				store.ErrSaveFailed, op, pgErr.ConstraintName, err)
		case notNullViolationCode:
			return fmt.Errorf("%w: %s: not null violation (%s): %v",
				store.ErrSaveFailed, op, pgErr.ColumnName, err)
		}
	}

	return fmt.Errorf("%w: %s: %v", store.ErrSaveFailed, op, err)
}
