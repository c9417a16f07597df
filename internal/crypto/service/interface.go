// Package service provides the cryptographic primitives behind credential
// envelopes: password-based key derivation, AEAD ciphers (AES-256-GCM,
// ChaCha20-Poly1305) and the envelope cipher that combines them.
package service

import (
	cryptoDomain "github.com/allisson/credseal/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt seals plaintext with optional AAD under a freshly generated nonce.
	// The returned ciphertext carries the authentication tag as its last TagSize bytes.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt opens a ciphertext (tag appended) using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KDF derives a fixed-length symmetric key from a master secret and a salt.
type KDF interface {
	// Derive returns a KeySize-byte key. The same inputs always produce the
	// same key. Callers own the returned slice and should zero it after use.
	Derive(masterSecret, salt []byte) ([]byte, error)
}

// EnvelopeCipher seals and opens credential envelopes.
type EnvelopeCipher interface {
	// Encrypt seals plaintext under masterSecret and returns the base64 envelope.
	Encrypt(plaintext string, masterSecret []byte) (string, error)

	// Decrypt opens a base64 envelope. Every failure is ErrDecryptionFailed.
	Decrypt(envelope string, masterSecret []byte) (string, error)

	// EncryptBytes is Encrypt returning the packed binary envelope.
	EncryptBytes(plaintext string, masterSecret []byte) ([]byte, error)

	// DecryptBytes is Decrypt over a packed binary envelope.
	DecryptBytes(envelope []byte, masterSecret []byte) (string, error)
}
