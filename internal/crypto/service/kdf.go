package service

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/allisson/credseal/internal/crypto/domain"
)

// PBKDF2KDF derives envelope keys with PBKDF2-HMAC-SHA256.
//
// The iteration count is part of the envelope scheme: envelopes sealed with
// one count can only be opened by a KDF configured with the same count.
type PBKDF2KDF struct {
	iterations int
}

// NewPBKDF2KDF creates a KDF with the given iteration count. Non-positive
// values fall back to cryptoDomain.KDFIterations.
func NewPBKDF2KDF(iterations int) *PBKDF2KDF {
	if iterations <= 0 {
		iterations = cryptoDomain.KDFIterations
	}
	return &PBKDF2KDF{iterations: iterations}
}

// Iterations returns the configured work factor.
func (k *PBKDF2KDF) Iterations() int {
	return k.iterations
}

// Derive stretches masterSecret with salt into a KeySize-byte key.
//
// It fails with ErrKeyDerivation only for malformed input: an empty master
// secret or a salt that is not exactly SaltSize bytes.
func (k *PBKDF2KDF) Derive(masterSecret, salt []byte) ([]byte, error) {
	if len(masterSecret) == 0 || len(salt) != cryptoDomain.SaltSize {
		return nil, cryptoDomain.ErrKeyDerivation
	}

	return pbkdf2.Key(masterSecret, salt, k.iterations, cryptoDomain.KeySize, sha256.New), nil
}
