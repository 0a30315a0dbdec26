package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código SQLSTATE de violación de unicidad en PostgreSQL.
const uniqueViolationCode = "23505"

// isUniqueViolation reporta si el error (directo o envuelto) es una violación
// de constraint único. Los repositorios lo traducen a domain.ErrDuplicate.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
