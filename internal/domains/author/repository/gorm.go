package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"author-registry/internal/domains/author"
	"author-registry/internal/shared/apperror"
	"author-registry/internal/shared/utils"
)

// gormRepository implements author.Repository on any GORM dialect
type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) author.Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Insert(ctx context.Context, a *author.Author) error {
	row := toRow(a)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return apperror.StorageFailure("failed to insert author", err)
	}
	return nil
}

func (r *gormRepository) Update(ctx context.Context, a *author.Author) error {
	row := toRow(a)

	// A map rather than the struct so a nil token is written as NULL.
	err := r.db.WithContext(ctx).
		Model(&authorRow{}).
		Where("author_id = ?", row.ID).
		Updates(map[string]interface{}{
			"author_activation_token": row.ActivationToken,
			"author_avatar_url":       row.AvatarURL,
			"author_email":            row.Email,
			"author_hash":             row.Hash,
			"author_username":         row.Username,
		}).Error
	if err != nil {
		return apperror.StorageFailure("failed to update author", err)
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("author_id = ?", id[:]).Delete(&authorRow{}).Error; err != nil {
		return apperror.StorageFailure("failed to delete author", err)
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*author.Author, bool, error) {
	var row authorRow
	err := r.db.WithContext(ctx).Where("author_id = ?", id[:]).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, apperror.StorageFailure("failed to get author by id", err)
	}

	a, err := row.toAuthor()
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}

func (r *gormRepository) FindByUsername(ctx context.Context, substring string) ([]*author.Author, error) {
	pattern, err := usernamePattern(substring)
	if err != nil {
		return nil, err
	}

	var rows []authorRow
	err = r.db.WithContext(ctx).
		Where("author_username LIKE ? ESCAPE ?", pattern, utils.LikeEscapeChar).
		Order("author_username").
		Order("author_id").
		Find(&rows).Error
	if err != nil {
		return nil, apperror.StorageFailure("failed to query authors", err)
	}

	authors := make([]*author.Author, 0, len(rows))
	for _, row := range rows {
		a, err := row.toAuthor()
		if err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, nil
}
