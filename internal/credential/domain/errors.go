package domain

import (
	"github.com/allisson/credseal/internal/errors"
)

// Credential errors.
var (
	// ErrCredentialNotFound indicates no credential has the requested name.
	ErrCredentialNotFound = errors.Wrap(errors.ErrNotFound, "credential not found")

	// ErrCredentialAlreadyExists indicates a concurrent insert of the same name.
	ErrCredentialAlreadyExists = errors.Wrap(errors.ErrConflict, "credential already exists")

	// ErrInvalidKeyFormat indicates plaintext that does not follow the key
	// prefix convention for its kind.
	ErrInvalidKeyFormat = errors.Wrap(errors.ErrInvalidInput, "invalid key format")

	// ErrEnvironmentMismatch indicates a key pair mixing test and live material.
	ErrEnvironmentMismatch = errors.Wrap(errors.ErrInvalidInput, "publishable and secret keys must share a mode")

	// ErrInvalidKind indicates an unsupported credential kind.
	ErrInvalidKind = errors.Wrap(errors.ErrInvalidInput, "unsupported credential kind")

	// ErrInvalidCredentialName indicates an empty, padded or oversized name.
	ErrInvalidCredentialName = errors.Wrap(errors.ErrInvalidInput, "invalid credential name")

	// ErrReservedName indicates a non-webhook credential under webhook/.
	ErrReservedName = errors.Wrap(errors.ErrInvalidInput, "names under webhook/ must hold webhook secrets")

	// ErrEmptyPlaintext indicates an empty secret value.
	ErrEmptyPlaintext = errors.Wrap(errors.ErrInvalidInput, "credential value cannot be empty")
)
