package implementation

import (
	"errors"
	"strings"

	"babyname-be/internal/apperr"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUndefinedColumn  = "42703"
	pgNotNullViolation = "23502"
)

// classifyWriteError separates schema-shaped rejections (which trigger the
// local fallback) from everything else. Postgres error codes are checked
// first; the message heuristics cover drivers that do not surface pgconn
// errors.
func classifyWriteError(err error, userMessage string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUndefinedColumn || pgErr.Code == pgNotNullViolation {
			return apperr.SchemaMismatch(userMessage, err)
		}
	}

	msg := err.Error()
	if strings.Contains(msg, "column") || strings.Contains(msg, "violates not-null constraint") {
		return apperr.SchemaMismatch(userMessage, err)
	}

	return apperr.StoreUnavailable(userMessage, err)
}
