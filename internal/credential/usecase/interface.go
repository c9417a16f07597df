// Package usecase stores, reveals and re-seals credentials. Plaintext is
// validated and sealed here; repositories only ever see envelopes.
package usecase

import (
	"context"

	credentialDomain "github.com/allisson/credseal/internal/credential/domain"
)

// CredentialRepository defines the interface for Credential persistence.
type CredentialRepository interface {
	Create(ctx context.Context, credential *credentialDomain.Credential) error
	Update(ctx context.Context, credential *credentialDomain.Credential) error
	GetByName(ctx context.Context, name string) (*credentialDomain.Credential, error)
	List(ctx context.Context, offset, limit int) ([]*credentialDomain.Credential, error)
	Delete(ctx context.Context, name string) error
}

// CredentialUseCase defines the credential lifecycle.
type CredentialUseCase interface {
	// Store validates plaintext for kind, seals it and writes it under name.
	// An existing credential is overwritten with a fresh envelope.
	Store(
		ctx context.Context,
		name string,
		kind credentialDomain.Kind,
		plaintext string,
	) (*credentialDomain.Credential, error)

	// StoreKeyPair validates a publishable/secret pair and stores both halves,
	// as "<name>/publishable" and "<name>/secret", in one transaction.
	StoreKeyPair(ctx context.Context, name, publishable, secret string) ([]*credentialDomain.Credential, error)

	// Reveal returns the plaintext of a credential. Callers should use it
	// immediately and not keep it.
	Reveal(ctx context.Context, name string) (string, error)

	Get(ctx context.Context, name string) (*credentialDomain.Credential, error)
	List(ctx context.Context, offset, limit int) ([]*credentialDomain.Credential, error)
	Delete(ctx context.Context, name string) error

	// ResealAll re-encrypts every credential under the active master secret
	// with at most concurrency envelopes in flight, and returns how many
	// were rewritten.
	ResealAll(ctx context.Context, concurrency int) (int, error)
}
