package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenGorm opens a GORM handle on PostgreSQL with the same retry policy as Connect.
// Pooling is GORM's; it is capped at one connection.
func OpenGorm(ctx context.Context, config *DBConfig) (*gorm.DB, error) {
	var lastErr error

	for attempt := 1; attempt <= config.MaxRetries; attempt++ {
		db, err := gorm.Open(postgres.Open(config.URL), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err == nil {
			err = pingGorm(ctx, db, config.ConnectTimeout)
		}
		if err == nil {
			log.Info().Int("attempt", attempt).Msg("gorm connected to postgres")
			return db, nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Msg("gorm connection attempt failed")

		if attempt < config.MaxRetries {
			delay := config.RetryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", config.MaxRetries, lastErr)
}

func pingGorm(ctx context.Context, db *gorm.DB, timeout time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return err
	}
	return nil
}

// CloseGorm releases the connection behind db.
func CloseGorm(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
