package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/akinalp/bloglist/pkg"
)

// isUniqueViolation reports a SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isCheckViolation reports a SQLite CHECK constraint failure.
func isCheckViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "CHECK constraint failed")
}

// expectOneRow turns "no row matched" into pkg.ErrNotFound.
func expectOneRow(result sql.Result, what string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s not found", pkg.ErrNotFound, what)
	}
	return nil
}
