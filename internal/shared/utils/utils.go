package utils

import (
	"strings"

	"github.com/google/uuid"

	"author-registry/internal/shared/apperror"
)

// ParseIdentifier parses the textual form of a UUID (canonical, braced or urn) into its
// 128-bit value. uuid.Nil is rejected: it never identifies a row.
func ParseIdentifier(s string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, apperror.InvalidIdentifier("id", "identifier is empty", nil)
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, apperror.InvalidIdentifier("id", "identifier is not a valid uuid", err)
	}

	return CheckIdentifier(id)
}

// IdentifierFromBytes decodes the raw 16-byte storage encoding of an identifier.
func IdentifierFromBytes(b []byte) (uuid.UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return uuid.Nil, apperror.InvalidIdentifier("id", "identifier bytes are not a valid uuid", err)
	}

	return CheckIdentifier(id)
}

// CheckIdentifier accepts an already typed identifier.
func CheckIdentifier(id uuid.UUID) (uuid.UUID, error) {
	if id == uuid.Nil {
		return uuid.Nil, apperror.InvalidIdentifier("id", "identifier is the nil uuid", nil)
	}
	return id, nil
}
