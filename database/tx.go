package database

import (
	"context"
	"database/sql"
	"fmt"
)

// TxQuerier is the query surface shared by *sql.DB and *sql.Tx.
//
// Repositories take a TxQuerier, so the same repository works on the pool
// for plain calls and on a transaction inside WithTx.
type TxQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction.
//
//   - fn returns nil: COMMIT
//   - fn returns an error: ROLLBACK, the error is returned
//   - fn panics: ROLLBACK, then the panic continues
//
// Usage:
//
//	err := database.WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
//	    blogs := repository.NewSQLiteBlogRepo(tx)
//	    ...
//	})
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
			}
			return
		}

		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", commitErr)
		}
	}()

	err = fn(tx)
	return
}
