package repository

import (
	"author-registry/internal/domains/author"
	"author-registry/internal/shared/apperror"
	"author-registry/internal/shared/utils"
)

const (
	columns = "author_id, author_activation_token, author_avatar_url, author_email, author_hash, author_username"

	uniqueViolation = "23505"
)

// authorRow is the storage shape of an Author. The id is the raw 16-byte uuid.
type authorRow struct {
	ID              []byte  `gorm:"column:author_id;primaryKey"`
	ActivationToken *string `gorm:"column:author_activation_token"`
	AvatarURL       string  `gorm:"column:author_avatar_url"`
	Email           string  `gorm:"column:author_email"`
	Hash            string  `gorm:"column:author_hash"`
	Username        string  `gorm:"column:author_username"`
}

func (authorRow) TableName() string {
	return "author"
}

func toRow(a *author.Author) authorRow {
	id := a.ID()
	return authorRow{
		ID:              id[:],
		ActivationToken: a.ActivationToken(),
		AvatarURL:       a.AvatarURL(),
		Email:           a.Email(),
		Hash:            a.Hash(),
		Username:        a.Username(),
	}
}

// toAuthor runs a stored row back through every validator. A row that no longer
// validates is a storage problem, not a caller problem.
func (r authorRow) toAuthor() (*author.Author, error) {
	id, err := utils.IdentifierFromBytes(r.ID)
	if err != nil {
		return nil, apperror.StorageFailure("stored author id is corrupt", err)
	}

	a, err := author.New(id, r.ActivationToken, r.AvatarURL, r.Email, r.Hash, r.Username)
	if err != nil {
		return nil, apperror.StorageFailure("stored author is invalid", err)
	}
	return a, nil
}

// usernamePattern turns a search term into a LIKE pattern matching it as a literal substring.
func usernamePattern(substring string) (string, error) {
	term := utils.Sanitize(substring)
	if term == "" {
		return "", apperror.InvalidFormat(author.FieldUsername, "search term is empty or insecure")
	}
	return utils.ContainsPattern(term), nil
}
