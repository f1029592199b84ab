package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence operations for Author.
// Implementations bind every value as a query parameter and report any data-store problem,
// including a stored row that no longer validates, as ErrStorageFailure.
type Repository interface {
	// Insert writes a new row with all six fields.
	Insert(ctx context.Context, a *Author) error

	// Update rewrites every mutable field of the row with a's identifier.
	// The identifier itself is never updated. No matching row is not an error.
	Update(ctx context.Context, a *Author) error

	// Delete removes the row with the given identifier. No matching row is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID returns found=false and a nil error when no row matches.
	FindByID(ctx context.Context, id uuid.UUID) (a *Author, found bool, err error)

	// FindByUsername returns every author whose username contains substring literally
	// (LIKE wildcards in substring are escaped), ordered by username then id.
	// The result is empty, not nil, when nothing matches.
	FindByUsername(ctx context.Context, substring string) ([]*Author, error)
}
