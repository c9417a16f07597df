// Package domain defines stored third-party credentials and the format checks
// applied to their plaintext before sealing.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind classifies what a credential holds.
type Kind string

const (
	// SecretKey is a payment-processor secret API key (sk_test_..., sk_live_...).
	SecretKey Kind = "secret_key"
	// PublishableKey is a payment-processor publishable key (pk_test_..., pk_live_...).
	PublishableKey Kind = "publishable_key"
	// RestrictedKey is a payment-processor restricted key (rk_test_..., rk_live_...).
	RestrictedKey Kind = "restricted_key"
	// WebhookSecret is a webhook signing secret (whsec_...).
	WebhookSecret Kind = "webhook_secret"
	// IntegrationToken is any other opaque integration token.
	IntegrationToken Kind = "integration_token"
)

// MaxNameLength bounds credential names.
const MaxNameLength = 255

// WebhookNamePrefix namespaces the signing secrets of webhook endpoints.
const WebhookNamePrefix = "webhook/"

// Credential is a stored secret. Only the sealed envelope is kept; the
// plaintext exists in memory only while a caller is using it.
type Credential struct {
	ID         uuid.UUID
	Name       string
	Kind       Kind
	Ciphertext string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ParseKind converts a string into a Kind.
func ParseKind(value string) (Kind, error) {
	switch Kind(value) {
	case SecretKey, PublishableKey, RestrictedKey, WebhookSecret, IntegrationToken:
		return Kind(value), nil
	default:
		return "", ErrInvalidKind
	}
}

// ValidateName checks the name length and the webhook/ namespace rule.
func ValidateName(name string, kind Kind) error {
	if name == "" || len(name) > MaxNameLength || strings.TrimSpace(name) != name {
		return ErrInvalidCredentialName
	}
	if strings.HasPrefix(name, WebhookNamePrefix) {
		if len(name) == len(WebhookNamePrefix) {
			return ErrInvalidCredentialName
		}
		if kind != WebhookSecret {
			return ErrReservedName
		}
	}
	return nil
}
