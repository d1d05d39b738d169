package errx

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// WrapPostgres maps Postgres errors to the unified Error type with appropriate status codes.
func WrapPostgres(err error) *Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return New(err, http.StatusNotFound, StoreNotFoundMessage)
	}

	return New(err, http.StatusBadGateway, StoreErrorMessage)
}
