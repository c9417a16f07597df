package app

import (
	"fmt"

	webhookHTTP "github.com/allisson/credseal/internal/webhook/http"
	webhookService "github.com/allisson/credseal/internal/webhook/service"
	webhookUseCase "github.com/allisson/credseal/internal/webhook/usecase"
)

// SignatureVerifier returns the verifier configured with
// WEBHOOK_TIMESTAMP_TOLERANCE_SECONDS.
func (c *Container) SignatureVerifier() webhookService.SignatureVerifier {
	c.signatureVerifierInit.Do(func() {
		c.signatureVerifier = webhookService.NewSignatureVerifier(
			webhookService.WithTolerance(c.config.WebhookTimestampTolerance),
		)
	})
	return c.signatureVerifier
}

// WebhookUseCase returns the instrumented webhook use case. Signing secrets
// are revealed through the credential use case.
func (c *Container) WebhookUseCase() (webhookUseCase.WebhookUseCase, error) {
	err := c.resolve(&c.webhookUseCaseInit, "webhookUseCase", func() error {
		credentials, err := c.CredentialUseCase()
		if err != nil {
			return fmt.Errorf("failed to get credential use case for webhook use case: %w", err)
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return fmt.Errorf("failed to get business metrics for webhook use case: %w", err)
		}
		useCase := webhookUseCase.NewWebhookUseCase(credentials, c.SignatureVerifier(), c.Logger())
		c.webhookUseCase = webhookUseCase.NewWebhookUseCaseWithMetrics(useCase, businessMetrics)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.webhookUseCase, nil
}

// WebhookHandler returns the webhook HTTP handler.
func (c *Container) WebhookHandler() (*webhookHTTP.WebhookHandler, error) {
	err := c.resolve(&c.webhookHandlerInit, "webhookHandler", func() error {
		useCase, err := c.WebhookUseCase()
		if err != nil {
			return fmt.Errorf("failed to get webhook use case for webhook handler: %w", err)
		}
		c.webhookHandler = webhookHTTP.NewWebhookHandler(useCase, c.config.WebhookSignatureHeader, c.Logger())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.webhookHandler, nil
}
