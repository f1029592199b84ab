package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"author-registry/internal/domains/author"
	"author-registry/internal/shared/utils"
	"author-registry/pkg/cache"
)

const (
	authorCacheKeyPrefix = "author:"
	DefaultCacheTTL      = 15 * time.Minute
)

// cachedAuthor is the cache encoding. Unlike the public JSON it keeps every field.
type cachedAuthor struct {
	ID              string  `json:"id"`
	ActivationToken *string `json:"activation_token"`
	AvatarURL       string  `json:"avatar_url"`
	Email           string  `json:"email"`
	Hash            string  `json:"hash"`
	Username        string  `json:"username"`
}

// cachedRepository is a cache-aside decorator around another author.Repository.
// Cache failures are logged and never reach the caller.
type cachedRepository struct {
	inner author.Repository
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedRepository(inner author.Repository, c cache.Cache, ttl time.Duration) author.Repository {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &cachedRepository{inner: inner, cache: c, ttl: ttl}
}

func cacheKey(id uuid.UUID) string {
	return authorCacheKeyPrefix + id.String()
}

func (r *cachedRepository) Insert(ctx context.Context, a *author.Author) error {
	return r.inner.Insert(ctx, a)
}

func (r *cachedRepository) Update(ctx context.Context, a *author.Author) error {
	if err := r.inner.Update(ctx, a); err != nil {
		return err
	}
	r.invalidate(ctx, a.ID())
	return nil
}

func (r *cachedRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *cachedRepository) FindByID(ctx context.Context, id uuid.UUID) (*author.Author, bool, error) {
	key := cacheKey(id)

	var c cachedAuthor
	hit, err := r.cache.Get(ctx, key, &c)
	switch {
	case err != nil:
		log.Warn().Err(err).Str("key", key).Msg("author cache read failed")
		r.invalidate(ctx, id)
	case hit:
		if a, err := c.toAuthor(); err == nil && a.ID() == id {
			return a, true, nil
		}
		log.Warn().Str("key", key).Msg("evicting malformed author cache entry")
		r.invalidate(ctx, id)
	}

	a, found, err := r.inner.FindByID(ctx, id)
	if err != nil || !found {
		return a, found, err
	}

	if err := r.cache.Set(ctx, key, fromAuthor(a), r.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("author cache write failed")
	}
	return a, true, nil
}

func (r *cachedRepository) FindByUsername(ctx context.Context, substring string) ([]*author.Author, error) {
	return r.inner.FindByUsername(ctx, substring)
}

func (r *cachedRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, cacheKey(id)); err != nil {
		log.Warn().Err(err).Str("author_id", id.String()).Msg("failed to invalidate author cache")
	}
}

func fromAuthor(a *author.Author) cachedAuthor {
	return cachedAuthor{
		ID:              a.ID().String(),
		ActivationToken: a.ActivationToken(),
		AvatarURL:       a.AvatarURL(),
		Email:           a.Email(),
		Hash:            a.Hash(),
		Username:        a.Username(),
	}
}

func (c cachedAuthor) toAuthor() (*author.Author, error) {
	id, err := utils.ParseIdentifier(c.ID)
	if err != nil {
		return nil, err
	}
	return author.New(id, c.ActivationToken, c.AvatarURL, c.Email, c.Hash, c.Username)
}
