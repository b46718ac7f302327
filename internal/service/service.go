// Package service holds the business logic layer. Services depend on the
// repository contracts and return domain errors with stable codes.
package service

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// isNoRows reports whether a repository call matched no row.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
