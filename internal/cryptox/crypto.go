// Package cryptox implements the credential hasher: argon2id over a per-user
// random salt, with constant-time verification.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"golang.org/x/crypto/argon2"
)

// argon2id parameters. Changing them invalidates every stored digest.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32

	SaltSize = 16
)

// NewSalt returns SaltSize random bytes.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrHash, err)
	}
	return salt, nil
}

// HashPassword derives the digest stored for password. The result is
// deterministic for a given (password, salt) pair.
func HashPassword(password string, salt []byte) ([]byte, error) {
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: empty salt", common.ErrHash)
	}
	if !utf8.ValidString(password) {
		return nil, fmt.Errorf("%w: password is not valid UTF-8", common.ErrHash)
	}
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen), nil
}

// VerifyPassword recomputes the digest for password and compares it with
// digest in constant time.
func VerifyPassword(password string, salt, digest []byte) (bool, error) {
	candidate, err := HashPassword(password, salt)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(candidate, digest) == 1, nil
}
