package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/credseal/internal/errors"
	webhookDomain "github.com/allisson/credseal/internal/webhook/domain"
	webhookService "github.com/allisson/credseal/internal/webhook/service"
	webhookUsecaseMocks "github.com/allisson/credseal/internal/webhook/usecase/mocks"
)

const signingSecret = "whsec_endpoint_secret"

var invoicePaid = []byte(`{"id":"evt_123","type":"invoice.paid","data":{"object":{"id":"in_1","amount_paid":900}}}`)

func newTestUseCase(revealer SecretRevealer, now time.Time) WebhookUseCase {
	verifier := webhookService.NewSignatureVerifier(
		webhookService.WithTolerance(5*time.Minute),
		webhookService.WithClock(func() time.Time { return now }),
	)
	return NewWebhookUseCase(revealer, verifier, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSecretName(t *testing.T) {
	assert.Equal(t, "webhook/billing", SecretName("billing"))
}

func TestWebhookUseCase_Receive(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1700000000, 0)
	signer := webhookService.NewSignatureVerifier()

	t.Run("Success", func(t *testing.T) {
		revealer := &webhookUsecaseMocks.MockSecretRevealer{}
		revealer.On("Reveal", ctx, "webhook/billing").Return(signingSecret, nil).Once()

		header := signer.Sign(invoicePaid, []byte(signingSecret), now)
		event, err := newTestUseCase(revealer, now).Receive(ctx, "billing", invoicePaid, header)

		require.NoError(t, err)
		invoice, ok := event.(*webhookDomain.InvoiceEvent)
		require.True(t, ok)
		assert.Equal(t, "evt_123", invoice.EventID())
		assert.Equal(t, int64(900), invoice.Object.AmountPaid)
		revealer.AssertExpectations(t)
	})

	t.Run("RotatedSecretSignatures", func(t *testing.T) {
		revealer := &webhookUsecaseMocks.MockSecretRevealer{}
		revealer.On("Reveal", ctx, "webhook/billing").Return(signingSecret, nil).Once()

		ts := now.Unix()
		header := webhookDomain.SignatureHeader{
			Timestamp: ts,
			Signatures: []string{
				webhookService.ComputeSignature([]byte("whsec_old"), ts, invoicePaid),
				webhookService.ComputeSignature([]byte(signingSecret), ts, invoicePaid),
			},
		}.String()

		_, err := newTestUseCase(revealer, now).Receive(ctx, "billing", invoicePaid, header)
		assert.NoError(t, err)
	})

	t.Run("SignatureMismatch", func(t *testing.T) {
		revealer := &webhookUsecaseMocks.MockSecretRevealer{}
		revealer.On("Reveal", ctx, "webhook/billing").Return(signingSecret, nil).Once()

		header := signer.Sign(invoicePaid, []byte("whsec_wrong"), now)
		event, err := newTestUseCase(revealer, now).Receive(ctx, "billing", invoicePaid, header)

		assert.Nil(t, event)
		assert.ErrorIs(t, err, webhookDomain.ErrSignatureMismatch)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("TamperedBody", func(t *testing.T) {
		revealer := &webhookUsecaseMocks.MockSecretRevealer{}
		revealer.On("Reveal", ctx, "webhook/billing").Return(signingSecret, nil).Once()

		header := signer.Sign(invoicePaid, []byte(signingSecret), now)
		tampered := []byte(`{"id":"evt_123","type":"invoice.paid","data":{"object":{"id":"in_1","amount_paid":1}}}`)

		_, err := newTestUseCase(revealer, now).Receive(ctx, "billing", tampered, header)
		assert.ErrorIs(t, err, webhookDomain.ErrSignatureMismatch)
	})

	t.Run("StaleTimestamp", func(t *testing.T) {
		revealer := &webhookUsecaseMocks.MockSecretRevealer{}
		revealer.On("Reveal", ctx, "webhook/billing").Return(signingSecret, nil).Once()

		header := signer.Sign(invoicePaid, []byte(signingSecret), now.Add(-time.Hour))
		_, err := newTestUseCase(revealer, now).Receive(ctx, "billing", invoicePaid, header)

		assert.ErrorIs(t, err, webhookDomain.ErrTimestampOutsideTolerance)
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		revealer := &webhookUsecaseMocks.MockSecretRevealer{}
		revealer.On("Reveal", ctx, "webhook/billing").Return(signingSecret, nil).Once()

		_, err := newTestUseCase(revealer, now).Receive(ctx, "billing", invoicePaid, "v1=abc")
		assert.ErrorIs(t, err, webhookDomain.ErrMalformedSignature)
	})

	t.Run("MalformedEvent", func(t *testing.T) {
		revealer := &webhookUsecaseMocks.MockSecretRevealer{}
		revealer.On("Reveal", ctx, "webhook/billing").Return(signingSecret, nil).Once()

		body := []byte(`{"type":"invoice.paid"}`)
		header := signer.Sign(body, []byte(signingSecret), now)
		_, err := newTestUseCase(revealer, now).Receive(ctx, "billing", body, header)

		assert.ErrorIs(t, err, webhookDomain.ErrMalformedEvent)
	})

	t.Run("UnknownEndpoint", func(t *testing.T) {
		revealer := &webhookUsecaseMocks.MockSecretRevealer{}
		revealer.On("Reveal", ctx, "webhook/missing").
			Return("", apperrors.Wrap(apperrors.ErrNotFound, "credential not found")).
			Once()

		_, err := newTestUseCase(revealer, now).Receive(ctx, "missing", invoicePaid, "t=1,v1=aa")
		assert.ErrorIs(t, err, webhookDomain.ErrEndpointNotFound)
	})

	t.Run("RevealError", func(t *testing.T) {
		revealer := &webhookUsecaseMocks.MockSecretRevealer{}
		boom := errors.New("database unavailable")
		revealer.On("Reveal", ctx, "webhook/billing").Return("", boom).Once()

		_, err := newTestUseCase(revealer, now).Receive(ctx, "billing", invoicePaid, "t=1,v1=aa")
		assert.ErrorIs(t, err, boom)
	})
}
