package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"author-registry/internal/domains/author"
	"author-registry/internal/shared/apperror"
	"author-registry/pkg/security"
)

// PasswordHasher turns a plain password into a stored hash. *security.ArgonHash satisfies it.
type PasswordHasher interface {
	GenerateFromPassword(password string) (string, error)
}

// authorService implements author.Service
type authorService struct {
	repo   author.Repository
	inTx   author.TxFunc
	hasher PasswordHasher
}

// NewAuthorService wires the service. inTx scopes read-modify-write workflows to one transaction.
func NewAuthorService(repo author.Repository, inTx author.TxFunc, hasher PasswordHasher) author.Service {
	return &authorService{
		repo:   repo,
		inTx:   inTx,
		hasher: hasher,
	}
}

func (s *authorService) Register(ctx context.Context, req *author.RegisterAuthorRequest) (*author.Author, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", invalidRequest(err)
	}

	hash, err := s.hasher.GenerateFromPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := security.NewActivationToken()
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue activation token: %w", err)
	}

	a, err := author.New(uuid.New(), &token, req.AvatarURL, req.Email, hash, req.Username)
	if err != nil {
		return nil, "", err
	}

	if err := s.repo.Insert(ctx, a); err != nil {
		return nil, "", err
	}

	log.Info().Str("author_id", a.ID().String()).Msg("author registered")
	return a, token, nil
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	a, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", author.ErrAuthorNotFound, id)
	}
	return a, nil
}

func (s *authorService) Search(ctx context.Context, term string) ([]*author.Author, error) {
	return s.repo.FindByUsername(ctx, term)
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, req *author.UpdateAuthorRequest) (*author.Author, error) {
	if req.IsEmpty() {
		return nil, author.ErrNothingToUpdate
	}
	if err := req.Validate(); err != nil {
		return nil, invalidRequest(err)
	}

	// hashed before the transaction opens
	var hash string
	if req.Password != nil {
		var err error
		if hash, err = s.hasher.GenerateFromPassword(*req.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	var updated *author.Author
	err := s.inTx(ctx, func(repo author.Repository) error {
		a, err := findExisting(ctx, repo, id)
		if err != nil {
			return err
		}

		if req.Username != nil {
			if err := a.SetUsername(*req.Username); err != nil {
				return err
			}
		}
		if req.Email != nil {
			if err := a.SetEmail(*req.Email); err != nil {
				return err
			}
		}
		if req.AvatarURL != nil {
			if err := a.SetAvatarURL(*req.AvatarURL); err != nil {
				return err
			}
		}
		if hash != "" {
			if err := a.SetHash(hash); err != nil {
				return err
			}
		}

		updated = a
		return repo.Update(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *authorService) Activate(ctx context.Context, id uuid.UUID, token string) (*author.Author, error) {
	var activated *author.Author

	err := s.inTx(ctx, func(repo author.Repository) error {
		a, err := findExisting(ctx, repo, id)
		if err != nil {
			return err
		}

		pending := a.ActivationToken()
		if pending == nil {
			activated = a
			return nil
		}

		given := strings.ToLower(strings.TrimSpace(token))
		if subtle.ConstantTimeCompare([]byte(*pending), []byte(given)) != 1 {
			return author.ErrActivationTokenMismatch
		}

		if err := a.SetActivationToken(nil); err != nil {
			return err
		}
		activated = a
		return repo.Update(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("author_id", id.String()).Msg("author activated")
	return activated, nil
}

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func findExisting(ctx context.Context, repo author.Repository, id uuid.UUID) (*author.Author, error) {
	a, found, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", author.ErrAuthorNotFound, id)
	}
	return a, nil
}

func invalidRequest(err error) error {
	return apperror.InvalidFormat("request", err.Error())
}
