package repository

import (
	"context"
	"database/sql"
)

// runInTx begins a transaction, runs fn and commits if fn returns nil,
// otherwise it rolls back and returns fn's error.
func (r *repository) runInTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
