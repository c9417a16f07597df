// Package usecase seals and opens credential envelopes under the configured
// master secret chain.
package usecase

import (
	"context"
)

// SealerUseCase binds the envelope cipher to the process's master secrets.
//
// Callers never handle the master secret themselves: Seal always uses the
// active secret, while Open also accepts envelopes sealed under the previous
// secret during a rotation window.
type SealerUseCase interface {
	// Seal encrypts plaintext under the active master secret.
	Seal(ctx context.Context, plaintext string) (string, error)

	// Open decrypts an envelope, trying the active then the previous master
	// secret. Every failure is cryptoDomain.ErrDecryptionFailed.
	Open(ctx context.Context, envelope string) (string, error)

	// Reseal opens an envelope and seals its plaintext again under the active
	// master secret.
	Reseal(ctx context.Context, envelope string) (string, error)
}
