package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// DuplicateError reports a write rejected by a unique constraint. It carries
// the offending column so callers can name the field in a conflict failure.
type DuplicateError struct {
	Table string
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate value for %s.%s", e.Table, e.Field)
}

// asDuplicateError translates a Postgres unique-constraint violation
// (SQLSTATE 23505) into a DuplicateError. Unique constraints in the schema
// are named <table>_<column>_key, so the colliding column can be recovered
// from the constraint name.
func asDuplicateError(err error, table string) (*DuplicateError, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil, false
	}

	field := strings.TrimSuffix(pgErr.ConstraintName, "_key")
	field = strings.TrimPrefix(field, table+"_")

	return &DuplicateError{Table: table, Field: field}, true
}
