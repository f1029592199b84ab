package database

import (
	"context"

	"github.com/jackc/pgx/v5"

	"author-registry/internal/shared/apperror"
)

// Beginner is anything a transaction can be started on: *pgx.Conn, *pgxpool.Pool or pgx.Tx.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxFunc is the body executed inside a transaction
type TxFunc func(pgx.Tx) error

// WithTransaction commits when fn returns nil and rolls back on error or panic.
// fn's error is returned as is; begin and commit failures are storage failures.
func WithTransaction(ctx context.Context, db Beginner, fn TxFunc) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return apperror.StorageFailure("failed to begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return apperror.StorageFailure("failed to commit transaction", err)
	}

	return nil
}
