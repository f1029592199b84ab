package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"author-registry/internal/shared/apperror"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	beginErr error
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return b.tx, nil
}

func TestWithTransaction_Commit(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}

	err := WithTransaction(context.Background(), b, func(tx pgx.Tx) error { return nil })
	require.NoError(t, err)
	assert.True(t, b.tx.committed)
	assert.False(t, b.tx.rolledBack)
}

func TestWithTransaction_RollbackOnError(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	boom := errors.New("boom")

	err := WithTransaction(context.Background(), b, func(tx pgx.Tx) error { return boom })
	assert.Same(t, boom, err, "the body's error is not reclassified")
	assert.False(t, b.tx.committed)
	assert.True(t, b.tx.rolledBack)
}

func TestWithTransaction_RollbackOnPanic(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = WithTransaction(context.Background(), b, func(tx pgx.Tx) error { panic("kaboom") })
	})
	assert.True(t, b.tx.rolledBack)
}

func TestWithTransaction_CommitFailure(t *testing.T) {
	commitErr := errors.New("connection reset")
	b := &fakeBeginner{tx: &fakeTx{commitErr: commitErr}}

	err := WithTransaction(context.Background(), b, func(tx pgx.Tx) error { return nil })
	assert.ErrorIs(t, err, commitErr)
	assert.ErrorIs(t, err, apperror.ErrStorageFailure)
	assert.True(t, b.tx.rolledBack, "a failed commit is rolled back")
}

func TestWithTransaction_BeginFailure(t *testing.T) {
	beginErr := errors.New("no connection")

	err := WithTransaction(context.Background(), &fakeBeginner{beginErr: beginErr}, func(tx pgx.Tx) error {
		t.Fatal("body must not run")
		return nil
	})
	assert.ErrorIs(t, err, beginErr)
	assert.ErrorIs(t, err, apperror.ErrStorageFailure)
}
