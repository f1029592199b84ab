package container

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"author-registry/internal/config"
	"author-registry/internal/domains/author"
	authorRepo "author-registry/internal/domains/author/repository"
	authorService "author-registry/internal/domains/author/service"
	infraCache "author-registry/internal/infrastructure/cache"
	"author-registry/internal/infrastructure/database"
	"author-registry/internal/shared/apperror"
	"author-registry/pkg/security"
)

// Container holds every long-lived dependency of the CLI.
// Exactly one of DB and Gorm is set, depending on the configured driver.
type Container struct {
	Config *config.Config

	DB    *database.PostgresDB
	Gorm  *gorm.DB
	Cache *infraCache.RedisClient // nil when redis is disabled

	AuthorRepo    author.Repository
	AuthorService author.Service
}

// NewContainer connects to storage (and redis when enabled) and builds the author repository.
// Order matters: config, infrastructure, then repositories.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	switch cfg.Database.Driver {
	case config.DriverGorm:
		db, err := database.OpenGorm(ctx, cfg.DBConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to open gorm: %w", err)
		}
		c.Gorm = db
	default:
		db := database.NewPostgresDB(cfg.DBConfig())
		if err := db.Connect(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		c.DB = db
	}

	if cfg.Redis.Enabled {
		rc := infraCache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := rc.Connect(ctx); err != nil {
			// the cache is optional; run uncached rather than fail
			log.Warn().Err(err).Msg("redis unavailable, continuing without cache")
			_ = rc.Close()
		} else {
			c.Cache = rc
		}
	}

	if c.Gorm != nil {
		c.AuthorRepo = c.withCache(authorRepo.NewGormRepository(c.Gorm))
	} else {
		c.AuthorRepo = c.withCache(authorRepo.NewPostgresRepository(c.DB.Conn))
	}

	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.InTx, security.New())

	log.Debug().Str("driver", cfg.Database.Driver).Bool("cache", c.Cache != nil).Msg("container ready")
	return c, nil
}

func (c *Container) withCache(repo author.Repository) author.Repository {
	if c.Cache == nil {
		return repo
	}
	return authorRepo.NewCachedRepository(repo, c.Cache, c.Config.Redis.CacheTTL)
}

// InTx runs fn with a repository bound to a single transaction. fn's error rolls it back and is
// returned unchanged; a failure to begin or commit is a storage failure.
func (c *Container) InTx(ctx context.Context, fn func(repo author.Repository) error) error {
	if c.Gorm != nil {
		var fnErr error
		err := c.Gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			fnErr = fn(c.withCache(authorRepo.NewGormRepository(tx)))
			return fnErr
		})
		if err != nil && fnErr == nil {
			// begin or commit failed
			return apperror.StorageFailure("transaction failed", err)
		}
		return err
	}

	return c.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
		return fn(c.withCache(authorRepo.NewPostgresRepository(tx)))
	})
}

// Cleanup releases everything NewContainer opened.
func (c *Container) Cleanup(ctx context.Context) {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis")
		}
	}
	if c.Gorm != nil {
		if err := database.CloseGorm(c.Gorm); err != nil {
			log.Error().Err(err).Msg("failed to close gorm")
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(ctx); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}
}
