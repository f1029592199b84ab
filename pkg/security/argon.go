// Package security creates and inspects the credentials stored on an author record
package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Algorithm tags as they appear in an encoded hash.
const (
	AlgoArgon2id = "argon2id"
	AlgoArgon2i  = "argon2i"
	AlgoBcrypt   = "bcrypt"
)

var ErrInvalidHash = errors.New("invalid hash format")

type ArgonHash struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// New returns the default parameters. With them an encoded hash is exactly 97 characters.
func New() *ArgonHash {
	return &ArgonHash{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// GenerateFromPassword hashes p and returns it in PHC form:
// $argon2id$v=19$m=<memory>,t=<iterations>,p=<parallelism>$<salt>$<key>
func (a *ArgonHash) GenerateFromPassword(p string) (encoded string, err error) {
	salt, err := genRandByt(a.SaltLength)
	if err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(p), salt, a.Iterations, a.Memory, a.Parallelism, a.KeyLength)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	encoded = fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		AlgoArgon2id, argon2.Version, a.Memory, a.Iterations, a.Parallelism, b64Salt, b64Hash)

	return encoded, nil
}

// VerifyPasswd compares a password p with the stored PHC-style encoded hash e
func (a *ArgonHash) VerifyPasswd(p, e string) (ok bool, err error) {
	parts := strings.Split(e, "$")
	if len(parts) != 6 || parts[1] != AlgoArgon2id {
		return false, ErrInvalidHash
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	if version != argon2.Version {
		return false, fmt.Errorf("%w: unsupported version %d", ErrInvalidHash, version)
	}

	var memory, iterations uint32
	var parallelism uint8

	_, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}

	calcHash := argon2.IDKey([]byte(p), salt, iterations, memory, parallelism, uint32(len(hash)))

	return subtle.ConstantTimeCompare(hash, calcHash) == 1, nil
}

// HashAlgorithm names the algorithm an encoded hash was produced with, judged by its tag.
// It returns "" for anything it does not recognise.
func HashAlgorithm(encoded string) string {
	switch {
	case strings.HasPrefix(encoded, "$"+AlgoArgon2id+"$"):
		return AlgoArgon2id
	case strings.HasPrefix(encoded, "$"+AlgoArgon2i+"$"):
		return AlgoArgon2i
	case len(encoded) == 60 &&
		(strings.HasPrefix(encoded, "$2y$") || strings.HasPrefix(encoded, "$2a$") || strings.HasPrefix(encoded, "$2b$")):
		return AlgoBcrypt
	}

	return ""
}

func genRandByt(n uint32) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	if err != nil {
		return nil, err
	}

	return b, nil
}
