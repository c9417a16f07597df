package usecase

import (
	"context"
	"time"

	credentialDomain "github.com/allisson/credseal/internal/credential/domain"
	"github.com/allisson/credseal/internal/metrics"
)

// credentialUseCaseWithMetrics decorates CredentialUseCase with metrics instrumentation.
type credentialUseCaseWithMetrics struct {
	next    CredentialUseCase
	metrics metrics.BusinessMetrics
}

// NewCredentialUseCaseWithMetrics wraps a CredentialUseCase with metrics recording.
func NewCredentialUseCaseWithMetrics(useCase CredentialUseCase, m metrics.BusinessMetrics) CredentialUseCase {
	return &credentialUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *credentialUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, c.metrics, "credential", operation, start, metrics.StatusFromError(err))
}

// Store records metrics for credential storage.
func (c *credentialUseCaseWithMetrics) Store(
	ctx context.Context,
	name string,
	kind credentialDomain.Kind,
	plaintext string,
) (*credentialDomain.Credential, error) {
	start := time.Now()
	credential, err := c.next.Store(ctx, name, kind, plaintext)
	c.record(ctx, "credential_store", start, err)
	return credential, err
}

// StoreKeyPair records metrics for key pair storage.
func (c *credentialUseCaseWithMetrics) StoreKeyPair(
	ctx context.Context,
	name, publishable, secret string,
) ([]*credentialDomain.Credential, error) {
	start := time.Now()
	credentials, err := c.next.StoreKeyPair(ctx, name, publishable, secret)
	c.record(ctx, "credential_store_key_pair", start, err)
	return credentials, err
}

// Reveal records metrics for credential reveal.
func (c *credentialUseCaseWithMetrics) Reveal(ctx context.Context, name string) (string, error) {
	start := time.Now()
	plaintext, err := c.next.Reveal(ctx, name)
	c.record(ctx, "credential_reveal", start, err)
	return plaintext, err
}

// Get records metrics for credential lookup.
func (c *credentialUseCaseWithMetrics) Get(ctx context.Context, name string) (*credentialDomain.Credential, error) {
	start := time.Now()
	credential, err := c.next.Get(ctx, name)
	c.record(ctx, "credential_get", start, err)
	return credential, err
}

// List records metrics for credential listing.
func (c *credentialUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*credentialDomain.Credential, error) {
	start := time.Now()
	credentials, err := c.next.List(ctx, offset, limit)
	c.record(ctx, "credential_list", start, err)
	return credentials, err
}

// Delete records metrics for credential deletion.
func (c *credentialUseCaseWithMetrics) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := c.next.Delete(ctx, name)
	c.record(ctx, "credential_delete", start, err)
	return err
}

// ResealAll records metrics for bulk re-encryption.
func (c *credentialUseCaseWithMetrics) ResealAll(ctx context.Context, concurrency int) (int, error) {
	start := time.Now()
	count, err := c.next.ResealAll(ctx, concurrency)
	c.record(ctx, "credential_reseal_all", start, err)
	return count, err
}
