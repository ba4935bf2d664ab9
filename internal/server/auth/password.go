package auth

import (
	"crypto/subtle"

	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/common"
	"golang.org/x/crypto/argon2"
)

const saltSize = 32

// NewSalt returns a fresh random salt for password hashing.
func NewSalt() []byte {
	return common.GenerateRandByteArray(saltSize)
}

// HashPassword derives an argon2id verifier from a password and salt.
// The verifier, not the password, is what gets persisted.
func HashPassword(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// VerifyPassword re-derives the verifier for a candidate password and
// compares it to the stored one in constant time.
func VerifyPassword(password, salt, verifier []byte) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(candidate, verifier) == 1
}
