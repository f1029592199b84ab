package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// DBConfig holds what is needed to reach PostgreSQL
type DBConfig struct {
	URL string

	// Retry configuration
	MaxRetries     int
	RetryDelay     time.Duration // delay before the second attempt, doubled after each failure
	ConnectTimeout time.Duration // per attempt
}

// PostgresDB owns a single connection. Repositories borrow it; only Close releases it.
type PostgresDB struct {
	Conn   *pgx.Conn
	Config *DBConfig
}

func NewPostgresDB(config *DBConfig) *PostgresDB {
	return &PostgresDB{Config: config}
}

// Connect dials with retry and verifies each attempt with Ping
func (db *PostgresDB) Connect(ctx context.Context) error {
	log.Info().Msg("initializing postgres connection")

	connConfig, err := pgx.ParseConfig(db.Config.URL)
	if err != nil {
		return fmt.Errorf("failed to parse database url: %w", err)
	}
	connConfig.ConnectTimeout = db.Config.ConnectTimeout

	if err := db.connectWithRetry(ctx, connConfig); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	log.Info().Msg("postgres connection established")
	return nil
}

// connectWithRetry backs off exponentially: RetryDelay, 2*RetryDelay, 4*RetryDelay...
// db.Conn is set only once an attempt has connected and answered a ping.
func (db *PostgresDB) connectWithRetry(ctx context.Context, config *pgx.ConnConfig) error {
	var lastErr error

	for attempt := 1; attempt <= db.Config.MaxRetries; attempt++ {
		log.Debug().Int("attempt", attempt).Int("max", db.Config.MaxRetries).Msg("connecting to postgres")

		connectCtx, cancel := context.WithTimeout(ctx, db.Config.ConnectTimeout)
		conn, err := pgx.ConnectConfig(connectCtx, config)
		if err == nil {
			db.Conn = conn
			if err = db.Ping(connectCtx); err != nil {
				_ = conn.Close(ctx)
				db.Conn = nil
			}
		}
		cancel()

		if err == nil {
			log.Info().Int("attempt", attempt).Msg("connected to postgres")
			return nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Msg("postgres connection attempt failed")

		if attempt < db.Config.MaxRetries {
			delay := db.Config.RetryDelay * time.Duration(1<<uint(attempt-1))
			log.Info().Dur("delay", delay).Msg("retrying postgres connection")

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}

	return fmt.Errorf("failed to connect after %d attempts: %w", db.Config.MaxRetries, lastErr)
}
