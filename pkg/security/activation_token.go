package security

import (
	"crypto/rand"
	"encoding/hex"
)

// tokenSize random bytes hex-encode to the 32 characters an activation token must have.
const tokenSize = 16

// NewActivationToken issues a fresh account activation token: 32 lowercase hex characters.
func NewActivationToken() (string, error) {
	b := make([]byte, tokenSize)

	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
