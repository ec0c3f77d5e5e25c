package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrEmailTaken is returned when a write violates the users.email unique index.
var ErrEmailTaken = errors.New("email already registered")

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
