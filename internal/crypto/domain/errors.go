package domain

import (
	"github.com/allisson/credseal/internal/errors"
)

// Cryptographic operation errors.
//
// Every failure to open an envelope is reported as ErrDecryptionFailed: a
// truncated blob, bad encoding, a wrong master secret, tampered bytes and a
// non-UTF-8 plaintext are indistinguishable to callers and logs.
var (
	// ErrUnsupportedAlgorithm indicates the requested AEAD algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a key is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrKeyDerivation indicates malformed KDF input: an empty master secret or
	// a salt of the wrong length. It is never caused by a "wrong" secret.
	ErrKeyDerivation = errors.Wrap(errors.ErrInvalidInput, "key derivation failed")

	// ErrDecryptionFailed indicates an envelope could not be opened.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrMasterSecretNotSet indicates MASTER_SECRET is not configured.
	ErrMasterSecretNotSet = errors.New("MASTER_SECRET is not set")

	// ErrInvalidMasterSecretBase64 indicates a KMS-wrapped master secret is not valid base64.
	ErrInvalidMasterSecretBase64 = errors.New("master secret is not valid base64")

	// ErrKMSDecryptionFailed indicates the KMS could not unwrap a master secret.
	ErrKMSDecryptionFailed = errors.New("failed to decrypt master secret with KMS")
)
