package author

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"author-registry/internal/shared/apperror"
	"author-registry/internal/shared/utils"
	"author-registry/pkg/security"
)

// Each mutator normalises its input, re-checks only its own field and leaves the field untouched
// when the check fails.

func (a *Author) setID(id uuid.UUID) error {
	id, err := utils.CheckIdentifier(id)
	if err != nil {
		var e *apperror.Error
		if errors.As(err, &e) {
			e.Field = FieldID
		}
		return err
	}

	a.id = id
	return nil
}

// SetActivationToken accepts nil ("no token issued" or "already activated") verbatim. Otherwise
// the token is trimmed, lowercased and must be exactly 32 hex digits.
func (a *Author) SetActivationToken(token *string) error {
	if token == nil {
		a.activationToken = nil
		return nil
	}

	t := strings.ToLower(strings.TrimSpace(*token))

	if err := validation.Validate(t, validation.Required, is.Hexadecimal); err != nil {
		return apperror.InvalidFormat(FieldActivationToken, "activation token is not valid")
	}
	if err := validation.Validate(t, validation.RuneLength(ActivationTokenLength, ActivationTokenLength)); err != nil {
		return apperror.OutOfRange(FieldActivationToken, "activation token has to be 32 characters")
	}

	a.activationToken = &t
	return nil
}

// SetAvatarURL trims and sanitises the url. An empty url is stored as "".
func (a *Author) SetAvatarURL(avatarURL string) error {
	u := utils.Sanitize(avatarURL)

	if err := fits(u, MaxAvatarURLLength); err != nil {
		return apperror.OutOfRange(FieldAvatarURL, "avatar url too long, must be less than 256 characters")
	}

	a.avatarURL = u
	return nil
}

func (a *Author) SetEmail(email string) error {
	e := strings.TrimSpace(email)

	if err := validation.Validate(e, validation.Required, is.EmailFormat); err != nil {
		return apperror.InvalidFormat(FieldEmail, "author email is empty or insecure")
	}
	if err := fits(e, MaxEmailLength); err != nil {
		return apperror.OutOfRange(FieldEmail, "author email is too large")
	}

	a.email = e
	return nil
}

// SetHash only accepts an Argon2id hash, judged by the algorithm tag it carries.
func (a *Author) SetHash(hash string) error {
	h := strings.TrimSpace(hash)

	if err := validation.Validate(h, validation.Required); err != nil {
		return apperror.InvalidFormat(FieldHash, "author password hash empty")
	}
	if security.HashAlgorithm(h) != security.AlgoArgon2id {
		return apperror.InvalidFormat(FieldHash, "author hash is not a valid hash")
	}
	if err := fits(h, MaxHashLength); err != nil {
		return apperror.OutOfRange(FieldHash, "author hash is too large")
	}

	a.hash = h
	return nil
}

func (a *Author) SetUsername(username string) error {
	u := utils.Sanitize(username)

	if err := validation.Validate(u, validation.Required); err != nil {
		return apperror.InvalidFormat(FieldUsername, "username is empty or insecure")
	}
	if err := fits(u, MaxUsernameLength); err != nil {
		return apperror.OutOfRange(FieldUsername, "username must be 32 characters or less")
	}

	a.username = u
	return nil
}

func fits(s string, max int) error {
	return validation.Validate(s, validation.RuneLength(0, max))
}
