package usecase

import (
	"context"
	"time"

	apperrors "github.com/allisson/credseal/internal/errors"
	"github.com/allisson/credseal/internal/metrics"
	webhookDomain "github.com/allisson/credseal/internal/webhook/domain"
)

// webhookUseCaseWithMetrics decorates WebhookUseCase with metrics instrumentation.
type webhookUseCaseWithMetrics struct {
	next    WebhookUseCase
	metrics metrics.BusinessMetrics
}

// NewWebhookUseCaseWithMetrics wraps a WebhookUseCase with metrics recording.
func NewWebhookUseCaseWithMetrics(useCase WebhookUseCase, m metrics.BusinessMetrics) WebhookUseCase {
	return &webhookUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Receive records metrics for webhook deliveries. Rejected signatures are
// counted separately from other failures.
func (w *webhookUseCaseWithMetrics) Receive(
	ctx context.Context,
	endpoint string,
	rawBody []byte,
	header string,
) (webhookDomain.Event, error) {
	start := time.Now()
	event, err := w.next.Receive(ctx, endpoint, rawBody, header)

	status := metrics.StatusFromError(err)
	if apperrors.Is(err, webhookDomain.ErrSignatureMismatch) ||
		apperrors.Is(err, webhookDomain.ErrTimestampOutsideTolerance) {
		status = metrics.StatusRejected
	}
	metrics.Observe(ctx, w.metrics, "webhook", "webhook_receive", start, status)

	return event, err
}
