package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/feedback-backend/internal/domain"
)

// pgCodeErrors maps SQLSTATE codes onto domain errors.
var pgCodeErrors = map[string]error{
	"23505": domain.ErrAlreadyExists, // unique_violation
	"23503": domain.ErrNotFound,      // foreign_key_violation
	"23514": domain.ErrValidation,    // check_violation, e.g. sentiment label
	"23502": domain.ErrValidation,    // not_null_violation
	"22001": domain.ErrValidation,    // string_data_right_truncation
	"22P02": domain.ErrValidation,    // invalid_text_representation
}

// MapError converts pgx/pgconn errors to domain errors, prefixed with the
// entity and key. Context errors are never mapped.
func MapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%s %v: %w", entity, key, err)
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped, ok := pgCodeErrors[pgErr.Code]; ok {
			if pgErr.ConstraintName != "" {
				return fmt.Errorf("%s %v: %s: %w", entity, key, pgErr.ConstraintName, mapped)
			}
			return fmt.Errorf("%s %v: %w", entity, key, mapped)
		}
	}

	return fmt.Errorf("%s %v: %w", entity, key, err)
}
