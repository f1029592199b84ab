package author

import (
	"github.com/google/uuid"
)

// Column limits, in characters. Password limits apply to the plain text before hashing.
const (
	ActivationTokenLength = 32
	MaxAvatarURLLength    = 255
	MaxEmailLength        = 128
	MaxHashLength         = 97
	MaxUsernameLength     = 32

	MinPasswordLength = 8
	MaxPasswordLength = 128
)

// Field names used in validation errors and in the external representation.
const (
	FieldID              = "authorId"
	FieldActivationToken = "authorActivationToken"
	FieldAvatarURL       = "authorAvatarUrl"
	FieldEmail           = "authorEmail"
	FieldHash            = "authorHash"
	FieldUsername        = "authorUsername"
)

// Author is one account record. Every field is validated on the way in, so a live *Author
// always satisfies all of its constraints at once. The identifier is fixed at construction.
type Author struct {
	id              uuid.UUID
	activationToken *string
	avatarURL       string
	email           string
	hash            string
	username        string
}

// New builds an Author, validating fields in order id, activation token, avatar url, email,
// hash, username and stopping at the first failure.
func New(id uuid.UUID, activationToken *string, avatarURL, email, hash, username string) (*Author, error) {
	a := &Author{}

	if err := a.setID(id); err != nil {
		return nil, err
	}
	if err := a.SetActivationToken(activationToken); err != nil {
		return nil, err
	}
	if err := a.SetAvatarURL(avatarURL); err != nil {
		return nil, err
	}
	if err := a.SetEmail(email); err != nil {
		return nil, err
	}
	if err := a.SetHash(hash); err != nil {
		return nil, err
	}
	if err := a.SetUsername(username); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Author) ID() uuid.UUID { return a.id }

// ActivationToken returns nil when no token is pending.
func (a *Author) ActivationToken() *string {
	if a.activationToken == nil {
		return nil
	}
	t := *a.activationToken
	return &t
}

func (a *Author) AvatarURL() string { return a.avatarURL }

func (a *Author) Email() string { return a.email }

func (a *Author) Hash() string { return a.hash }

func (a *Author) Username() string { return a.username }

// IsActivated reports whether the account has no outstanding activation token.
func (a *Author) IsActivated() bool {
	return a.activationToken == nil
}
