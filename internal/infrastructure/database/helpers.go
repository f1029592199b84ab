package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	pkgdb "author-registry/pkg/database"
)

func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Conn == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Conn.Ping(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// WithTransaction runs fn inside a transaction on the owned connection.
func (db *PostgresDB) WithTransaction(ctx context.Context, fn pkgdb.TxFunc) error {
	if db.Conn == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	return pkgdb.WithTransaction(ctx, db.Conn, fn)
}

// Close is safe to call more than once.
func (db *PostgresDB) Close(ctx context.Context) error {
	if db.Conn == nil {
		return nil
	}

	log.Info().Msg("closing postgres connection")
	err := db.Conn.Close(ctx)
	db.Conn = nil
	return err
}

var _ pkgdb.Beginner = (*pgx.Conn)(nil)
