// Package mocks provides mock implementations of webhook use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	webhookDomain "github.com/allisson/credseal/internal/webhook/domain"
)

// MockWebhookUseCase is a mock implementation of WebhookUseCase for testing.
type MockWebhookUseCase struct {
	mock.Mock
}

// Receive mocks the Receive method of WebhookUseCase.
func (m *MockWebhookUseCase) Receive(
	ctx context.Context,
	endpoint string,
	rawBody []byte,
	header string,
) (webhookDomain.Event, error) {
	args := m.Called(ctx, endpoint, rawBody, header)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(webhookDomain.Event), args.Error(1)
}

// MockSecretRevealer is a mock implementation of SecretRevealer for testing.
type MockSecretRevealer struct {
	mock.Mock
}

// Reveal mocks the Reveal method of SecretRevealer.
func (m *MockSecretRevealer) Reveal(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}
