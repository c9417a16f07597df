package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	credentialDomain "github.com/allisson/credseal/internal/credential/domain"
	credentialMocks "github.com/allisson/credseal/internal/credential/usecase/mocks"
)

func TestRunStoreCredential(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success", func(t *testing.T) {
		uc := &credentialMocks.MockCredentialUseCase{}
		uc.On("Store", ctx, "webhook/stripe", credentialDomain.WebhookSecret, "whsec_abc").
			Return(&credentialDomain.Credential{Name: "webhook/stripe", Kind: credentialDomain.WebhookSecret}, nil)

		var out bytes.Buffer
		err := RunStoreCredential(ctx, uc, logger, IOTuple{
			Reader: strings.NewReader("whsec_abc\n"),
			Writer: &out,
		}, "webhook/stripe", "webhook_secret")
		require.NoError(t, err)
		assert.Equal(t, "Stored webhook/stripe (webhook_secret)\n", out.String())
		assert.NotContains(t, out.String(), "whsec_abc")
		uc.AssertExpectations(t)
	})

	t.Run("invalid-kind", func(t *testing.T) {
		uc := &credentialMocks.MockCredentialUseCase{}
		err := RunStoreCredential(ctx, uc, logger, IOTuple{Reader: strings.NewReader("x")}, "n", "password")
		assert.ErrorIs(t, err, credentialDomain.ErrInvalidKind)
		uc.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store-error", func(t *testing.T) {
		uc := &credentialMocks.MockCredentialUseCase{}
		uc.On("Store", ctx, "stripe", credentialDomain.SecretKey, "pk_live_x").
			Return(nil, credentialDomain.ErrInvalidKeyFormat)

		err := RunStoreCredential(ctx, uc, logger, IOTuple{
			Reader: strings.NewReader("pk_live_x"),
			Writer: &bytes.Buffer{},
		}, "stripe", "secret_key")
		assert.ErrorIs(t, err, credentialDomain.ErrInvalidKeyFormat)
	})
}

func TestRunResealCredentials(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("text", func(t *testing.T) {
		uc := &credentialMocks.MockCredentialUseCase{}
		uc.On("ResealAll", ctx, 4).Return(12, nil)

		var out bytes.Buffer
		require.NoError(t, RunResealCredentials(ctx, uc, logger, &out, 4, "text"))
		assert.Equal(t, "Resealed 12 credentials\n", out.String())
	})

	t.Run("json", func(t *testing.T) {
		uc := &credentialMocks.MockCredentialUseCase{}
		uc.On("ResealAll", ctx, 1).Return(3, nil)

		var out bytes.Buffer
		require.NoError(t, RunResealCredentials(ctx, uc, logger, &out, 1, "json"))
		assert.JSONEq(t, `{"resealed":3}`, out.String())
	})

	t.Run("error", func(t *testing.T) {
		uc := &credentialMocks.MockCredentialUseCase{}
		uc.On("ResealAll", ctx, 2).Return(5, errors.New("db down"))

		err := RunResealCredentials(ctx, uc, logger, &bytes.Buffer{}, 2, "text")
		assert.ErrorContains(t, err, "after 5")
	})
}
