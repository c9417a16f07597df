package usecase

import (
	"context"
	"log/slog"

	cryptoDomain "github.com/allisson/credseal/internal/crypto/domain"
	apperrors "github.com/allisson/credseal/internal/errors"
	webhookDomain "github.com/allisson/credseal/internal/webhook/domain"
	webhookService "github.com/allisson/credseal/internal/webhook/service"
)

// SecretNamePrefix prefixes the credential name holding an endpoint's signing secret.
const SecretNamePrefix = "webhook/"

// SecretName returns the credential name for an endpoint's signing secret.
func SecretName(endpoint string) string {
	return SecretNamePrefix + endpoint
}

type webhookUseCase struct {
	secrets  SecretRevealer
	verifier webhookService.SignatureVerifier
	logger   *slog.Logger
}

// Receive verifies and parses one webhook delivery.
func (w *webhookUseCase) Receive(
	ctx context.Context,
	endpoint string,
	rawBody []byte,
	header string,
) (webhookDomain.Event, error) {
	secret, err := w.secrets.Reveal(ctx, SecretName(endpoint))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, webhookDomain.ErrEndpointNotFound
		}
		return nil, err
	}

	secretBytes := []byte(secret)
	defer cryptoDomain.Zero(secretBytes)

	ok, err := w.verifier.Verify(rawBody, header, secretBytes)
	if err != nil {
		w.logger.Warn("webhook verification failed",
			slog.String("endpoint", endpoint),
			slog.String("reason", err.Error()))
		return nil, err
	}
	if !ok {
		w.logger.Warn("webhook signature mismatch", slog.String("endpoint", endpoint))
		return nil, webhookDomain.ErrSignatureMismatch
	}

	event, err := webhookDomain.ParseEvent(rawBody)
	if err != nil {
		return nil, err
	}

	w.logger.Info("webhook event received",
		slog.String("endpoint", endpoint),
		slog.String("event_id", event.EventID()),
		slog.String("event_type", event.EventType()),
		slog.String("category", string(event.Category())))

	return event, nil
}

// NewWebhookUseCase creates a WebhookUseCase that reads signing secrets
// through secrets.
func NewWebhookUseCase(
	secrets SecretRevealer,
	verifier webhookService.SignatureVerifier,
	logger *slog.Logger,
) WebhookUseCase {
	return &webhookUseCase{
		secrets:  secrets,
		verifier: verifier,
		logger:   logger,
	}
}
