package author

import (
	"context"

	"github.com/google/uuid"
)

// TxFunc runs fn with a Repository bound to one transaction; fn's error rolls it back.
type TxFunc func(ctx context.Context, fn func(repo Repository) error) error

// Service defines the account workflows built on top of Repository
type Service interface {
	// Register hashes the password with Argon2id, issues an activation token and stores the author.
	// The plain token is returned once so it can be delivered to the owner.
	Register(ctx context.Context, req *RegisterAuthorRequest) (a *Author, activationToken string, err error)

	// GetByID errors with ErrAuthorNotFound on a miss.
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// Search lists authors whose username contains term literally.
	Search(ctx context.Context, term string) ([]*Author, error)

	// Update applies the non-nil fields of req in one transaction. On any validation
	// failure nothing is written.
	Update(ctx context.Context, id uuid.UUID, req *UpdateAuthorRequest) (*Author, error)

	// Activate clears the pending token when token matches it.
	// Activating an already active author succeeds without a write.
	Activate(ctx context.Context, id uuid.UUID, token string) (*Author, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
