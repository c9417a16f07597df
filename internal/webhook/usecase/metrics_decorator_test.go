package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/credseal/internal/metrics"
	webhookDomain "github.com/allisson/credseal/internal/webhook/domain"
	webhookUsecaseMocks "github.com/allisson/credseal/internal/webhook/usecase/mocks"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func TestWebhookMetricsDecorator_Receive(t *testing.T) {
	ctx := context.Background()
	body := []byte(`{}`)

	tests := []struct {
		name   string
		event  webhookDomain.Event
		err    error
		status string
	}{
		{"Success", &webhookDomain.UnknownEvent{}, nil, "success"},
		{"Mismatch", nil, webhookDomain.ErrSignatureMismatch, "rejected"},
		{"Stale", nil, webhookDomain.ErrTimestampOutsideTolerance, "rejected"},
		{"Malformed", nil, webhookDomain.ErrMalformedSignature, "error"},
		{"Internal", nil, errors.New("boom"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &webhookUsecaseMocks.MockWebhookUseCase{}
			m := &mockBusinessMetrics{}

			next.On("Receive", ctx, "billing", body, "hdr").Return(tt.event, tt.err).Once()
			m.On("RecordOperation", ctx, "webhook", "webhook_receive", tt.status).Return().Once()
			m.On("RecordDuration", ctx, "webhook", "webhook_receive", mock.AnythingOfType("time.Duration"), tt.status).
				Return().
				Once()

			event, err := NewWebhookUseCaseWithMetrics(next, m).Receive(ctx, "billing", body, "hdr")

			assert.Equal(t, tt.event, event)
			assert.Equal(t, tt.err, err)
			next.AssertExpectations(t)
			m.AssertExpectations(t)
		})
	}
}
