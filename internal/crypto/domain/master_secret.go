package domain

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
)

// KMSKeeper wraps and unwraps key material with an external KMS key.
// *secrets.Keeper from gocloud.dev satisfies it.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens keepers for a KMS key URI.
type KMSService interface {
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}

// MasterSecretChain holds the master secret used to seal new envelopes and,
// during a rotation window, the previous master secret that may still be
// needed to open envelopes sealed before the rotation.
//
// The chain is built once at startup and passed to the components that need
// it. Nothing below it reads the process environment.
type MasterSecretChain struct {
	active   []byte
	previous []byte
}

// NewMasterSecretChain builds a chain from raw secrets. previous may be nil.
// The chain keeps its own copies of both slices.
func NewMasterSecretChain(active, previous []byte) (*MasterSecretChain, error) {
	if len(active) == 0 {
		return nil, ErrMasterSecretNotSet
	}

	chain := &MasterSecretChain{active: append([]byte(nil), active...)}
	if len(previous) > 0 {
		chain.previous = append([]byte(nil), previous...)
	}
	return chain, nil
}

// Active returns the master secret used for sealing.
func (m *MasterSecretChain) Active() []byte {
	return m.active
}

// Previous returns the pre-rotation master secret, or nil when none is configured.
func (m *MasterSecretChain) Previous() []byte {
	return m.previous
}

// Close zeroes the held secrets. The chain must not be used afterwards.
func (m *MasterSecretChain) Close() {
	Zero(m.active)
	Zero(m.previous)
	m.active = nil
	m.previous = nil
}

// LoadMasterSecretChain builds the chain from configuration values.
//
// Without a KMS key URI both values are used verbatim as passphrases. With a
// KMS key URI both values must be base64 KMS ciphertexts, which are unwrapped
// through the keeper before use.
func LoadMasterSecretChain(
	ctx context.Context,
	active, previous, kmsKeyURI string,
	kmsService KMSService,
	logger *slog.Logger,
) (*MasterSecretChain, error) {
	if active == "" {
		return nil, ErrMasterSecretNotSet
	}

	if kmsKeyURI == "" {
		logger.Warn("master secret loaded in plaintext mode, configure KMS_KEY_URI for production")
		return NewMasterSecretChain([]byte(active), []byte(previous))
	}

	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Error("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	activeKey, err := unwrapMasterSecret(ctx, keeper, active)
	if err != nil {
		return nil, fmt.Errorf("active master secret: %w", err)
	}
	defer Zero(activeKey)

	var previousKey []byte
	if previous != "" {
		previousKey, err = unwrapMasterSecret(ctx, keeper, previous)
		if err != nil {
			return nil, fmt.Errorf("previous master secret: %w", err)
		}
		defer Zero(previousKey)
	}

	logger.Info("master secret unwrapped with KMS",
		slog.Bool("has_previous", previousKey != nil))

	return NewMasterSecretChain(activeKey, previousKey)
}

func unwrapMasterSecret(ctx context.Context, keeper KMSKeeper, encoded string) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMasterSecretBase64, err)
	}

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKMSDecryptionFailed, err)
	}
	return plaintext, nil
}
