package service

import (
	"crypto/rand"
	"fmt"
	"unicode/utf8"

	cryptoDomain "github.com/allisson/credseal/internal/crypto/domain"
)

// EnvelopeCipherService implements EnvelopeCipher.
//
// Every Encrypt call draws a fresh 64-byte salt, derives a key from the
// master secret and that salt, and seals the plaintext under a fresh 12-byte
// nonce with no associated data. The envelope stores salt, nonce, tag and
// ciphertext; Decrypt re-derives the same key from the stored salt.
//
// Because each envelope gets its own salt, each envelope also gets its own
// derived key, so nonce collisions across envelopes cannot occur under one key.
//
// The service holds no mutable state and is safe for concurrent use. The KDF
// dominates the cost of both operations.
type EnvelopeCipherService struct {
	kdf         KDF
	aeadManager AEADManager
	alg         cryptoDomain.Algorithm
}

// NewEnvelopeCipher creates an envelope cipher using kdf for key derivation
// and alg for sealing.
func NewEnvelopeCipher(kdf KDF, aeadManager AEADManager, alg cryptoDomain.Algorithm) *EnvelopeCipherService {
	return &EnvelopeCipherService{
		kdf:         kdf,
		aeadManager: aeadManager,
		alg:         alg,
	}
}

// Encrypt seals plaintext and returns the base64 envelope.
func (e *EnvelopeCipherService) Encrypt(plaintext string, masterSecret []byte) (string, error) {
	envelope, err := e.seal(plaintext, masterSecret)
	if err != nil {
		return "", err
	}
	return envelope.String(), nil
}

// EncryptBytes seals plaintext and returns the packed envelope bytes.
func (e *EnvelopeCipherService) EncryptBytes(plaintext string, masterSecret []byte) ([]byte, error) {
	envelope, err := e.seal(plaintext, masterSecret)
	if err != nil {
		return nil, err
	}
	return envelope.Bytes(), nil
}

// Decrypt opens a base64 envelope.
func (e *EnvelopeCipherService) Decrypt(envelope string, masterSecret []byte) (string, error) {
	parsed, err := cryptoDomain.ParseEnvelope(envelope)
	if err != nil {
		return "", err
	}
	return e.open(parsed, masterSecret)
}

// DecryptBytes opens a packed envelope.
func (e *EnvelopeCipherService) DecryptBytes(envelope []byte, masterSecret []byte) (string, error) {
	parsed, err := cryptoDomain.EnvelopeFromBytes(envelope)
	if err != nil {
		return "", err
	}
	return e.open(parsed, masterSecret)
}

func (e *EnvelopeCipherService) seal(plaintext string, masterSecret []byte) (cryptoDomain.Envelope, error) {
	salt := make([]byte, cryptoDomain.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return cryptoDomain.Envelope{}, fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := e.kdf.Derive(masterSecret, salt)
	if err != nil {
		return cryptoDomain.Envelope{}, err
	}
	defer cryptoDomain.Zero(key)

	cipher, err := e.aeadManager.CreateCipher(key, e.alg)
	if err != nil {
		return cryptoDomain.Envelope{}, err
	}

	sealed, nonce, err := cipher.Encrypt([]byte(plaintext), nil)
	if err != nil {
		return cryptoDomain.Envelope{}, err
	}

	tagStart := len(sealed) - cryptoDomain.TagSize
	return cryptoDomain.Envelope{
		Salt:       salt,
		Nonce:      nonce,
		Tag:        sealed[tagStart:],
		Ciphertext: sealed[:tagStart:tagStart],
	}, nil
}

func (e *EnvelopeCipherService) open(envelope cryptoDomain.Envelope, masterSecret []byte) (string, error) {
	key, err := e.kdf.Derive(masterSecret, envelope.Salt)
	if err != nil {
		return "", err
	}
	defer cryptoDomain.Zero(key)

	cipher, err := e.aeadManager.CreateCipher(key, e.alg)
	if err != nil {
		return "", err
	}

	sealed := make([]byte, 0, len(envelope.Ciphertext)+cryptoDomain.TagSize)
	sealed = append(sealed, envelope.Ciphertext...)
	sealed = append(sealed, envelope.Tag...)

	plaintext, err := cipher.Decrypt(sealed, envelope.Nonce, nil)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	defer cryptoDomain.Zero(plaintext)

	if !utf8.Valid(plaintext) {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	return string(plaintext), nil
}
