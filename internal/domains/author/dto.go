package author

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AuthorResponse is the only shape an Author takes outside the process.
// The activation token and the password hash are never part of it.
type AuthorResponse struct {
	AuthorID        string `json:"authorId"`
	AuthorAvatarURL string `json:"authorAvatarUrl"`
	AuthorEmail     string `json:"authorEmail"`
	AuthorUsername  string `json:"authorUsername"`
}

// ToResponse projects the exposable fields.
func (a *Author) ToResponse() *AuthorResponse {
	return &AuthorResponse{
		AuthorID:        a.id.String(),
		AuthorAvatarURL: a.avatarURL,
		AuthorEmail:     a.email,
		AuthorUsername:  a.username,
	}
}

// MarshalJSON makes json.Marshal(author) produce the redacted representation.
func (a *Author) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ToResponse())
}

// ToResponses projects a slice, keeping order.
func ToResponses(authors []*Author) []*AuthorResponse {
	out := make([]*AuthorResponse, 0, len(authors))
	for _, a := range authors {
		out = append(out, a.ToResponse())
	}
	return out
}

// RegisterAuthorRequest carries the input of Service.Register. The password is plain text.
type RegisterAuthorRequest struct {
	Username  string `json:"authorUsername"`
	Email     string `json:"authorEmail"`
	Password  string `json:"password"`
	AvatarURL string `json:"authorAvatarUrl,omitempty"`
}

func (r RegisterAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("username is required")),
		validation.Field(&r.Email, validation.Required.Error("email is required")),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.RuneLength(MinPasswordLength, MaxPasswordLength).Error("password must be 8-128 characters"),
		),
	)
}

// UpdateAuthorRequest is a partial update: nil fields keep their value
type UpdateAuthorRequest struct {
	Username  *string `json:"authorUsername,omitempty"`
	Email     *string `json:"authorEmail,omitempty"`
	AvatarURL *string `json:"authorAvatarUrl,omitempty"`
	Password  *string `json:"password,omitempty"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password,
			validation.When(r.Password != nil,
				validation.Required.Error("password must not be empty"),
				validation.RuneLength(MinPasswordLength, MaxPasswordLength).Error("password must be 8-128 characters"),
			),
		),
	)
}

func (r UpdateAuthorRequest) IsEmpty() bool {
	return r.Username == nil && r.Email == nil && r.AvatarURL == nil && r.Password == nil
}
