package author

import (
	"errors"

	"author-registry/internal/shared/apperror"
)

// Failure kinds an Author operation can return; match with errors.Is.
var (
	ErrInvalidFormat     = apperror.ErrInvalidFormat
	ErrOutOfRange        = apperror.ErrOutOfRange
	ErrInvalidIdentifier = apperror.ErrInvalidIdentifier
	ErrStorageFailure    = apperror.ErrStorageFailure
)

// Service-level errors
var (
	ErrAuthorNotFound          = errors.New("author not found")
	ErrActivationTokenMismatch = errors.New("activation token does not match")
	ErrNothingToUpdate         = errors.New("no field to update")
)

// ToErrorCode converts error to a stable code for the caller's own layer
func ToErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrActivationTokenMismatch):
		return "ACTIVATION_TOKEN_MISMATCH"
	case errors.Is(err, ErrNothingToUpdate):
		return "NOTHING_TO_UPDATE"
	default:
		return apperror.KindOf(err).String()
	}
}
