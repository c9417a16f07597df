// Package usecase authenticates inbound webhook deliveries and turns them into
// typed events.
package usecase

import (
	"context"

	webhookDomain "github.com/allisson/credseal/internal/webhook/domain"
)

// SecretRevealer returns the plaintext of a stored credential. The credential
// use case satisfies it.
type SecretRevealer interface {
	Reveal(ctx context.Context, name string) (string, error)
}

// WebhookUseCase handles deliveries to named webhook endpoints.
type WebhookUseCase interface {
	// Receive verifies rawBody against header using the endpoint's signing
	// secret and, on success, parses the event. The body must be the exact
	// bytes received; re-serialized JSON will not verify.
	Receive(ctx context.Context, endpoint string, rawBody []byte, header string) (webhookDomain.Event, error)
}
