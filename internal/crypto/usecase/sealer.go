package usecase

import (
	"context"

	cryptoDomain "github.com/allisson/credseal/internal/crypto/domain"
	cryptoService "github.com/allisson/credseal/internal/crypto/service"
	apperrors "github.com/allisson/credseal/internal/errors"
)

type sealer struct {
	cipher cryptoService.EnvelopeCipher
	chain  *cryptoDomain.MasterSecretChain
}

// Seal encrypts plaintext under the active master secret.
func (s *sealer) Seal(_ context.Context, plaintext string) (string, error) {
	return s.cipher.Encrypt(plaintext, s.chain.Active())
}

// Open decrypts an envelope with the active master secret, falling back to the
// previous one when configured.
func (s *sealer) Open(_ context.Context, envelope string) (string, error) {
	plaintext, err := s.cipher.Decrypt(envelope, s.chain.Active())
	if err == nil {
		return plaintext, nil
	}
	if !apperrors.Is(err, cryptoDomain.ErrDecryptionFailed) || s.chain.Previous() == nil {
		return "", err
	}
	return s.cipher.Decrypt(envelope, s.chain.Previous())
}

// Reseal re-encrypts an envelope under the active master secret.
func (s *sealer) Reseal(ctx context.Context, envelope string) (string, error) {
	plaintext, err := s.Open(ctx, envelope)
	if err != nil {
		return "", err
	}
	return s.Seal(ctx, plaintext)
}

// NewSealer creates a SealerUseCase over the given cipher and master secret chain.
func NewSealer(cipher cryptoService.EnvelopeCipher, chain *cryptoDomain.MasterSecretChain) SealerUseCase {
	return &sealer{
		cipher: cipher,
		chain:  chain,
	}
}
