package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/credseal/internal/config"
	cryptoDomain "github.com/allisson/credseal/internal/crypto/domain"
	"github.com/allisson/credseal/internal/metrics"
)

func newTestConfig() *config.Config {
	return &config.Config{
		LogLevel:                  "error",
		DBDriver:                  "invalid_driver",
		ServerHost:                "localhost",
		ServerPort:                8080,
		MasterSecret:              "m-secret",
		KDFIterations:             1000,
		EnvelopeAlgorithm:         "aes-gcm",
		TokenPrefix:               "cs",
		WebhookSignatureHeader:    "Stripe-Signature",
		WebhookTimestampTolerance: 5 * time.Minute,
		MetricsNamespace:          "credseal_test",
		MetricsPort:               8081,
	}
}

func TestNewContainer(t *testing.T) {
	cfg := newTestConfig()
	container := NewContainer(cfg)

	assert.Same(t, cfg, container.Config())
	assert.Nil(t, container.logger)
}

func TestContainer_Logger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		t.Run(level, func(t *testing.T) {
			cfg := newTestConfig()
			cfg.LogLevel = level
			container := NewContainer(cfg)

			logger := container.Logger()
			require.NotNil(t, logger)
			assert.Same(t, logger, container.Logger())
		})
	}
}

func TestContainer_DBErrorIsCached(t *testing.T) {
	container := NewContainer(newTestConfig())

	_, err := container.DB()
	require.Error(t, err)

	_, err2 := container.DB()
	assert.Equal(t, err, err2)
}

func TestContainer_RepositoriesPropagateDBError(t *testing.T) {
	container := NewContainer(newTestConfig())

	_, err := container.TokenRepository()
	assert.ErrorContains(t, err, "failed to get database for token repository")

	_, err = container.CredentialRepository()
	assert.ErrorContains(t, err, "failed to get database for credential repository")

	_, err = container.HTTPServer()
	assert.Error(t, err)
}

func TestContainer_EnvelopeCipher(t *testing.T) {
	t.Run("ChaCha20", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.EnvelopeAlgorithm = "chacha20-poly1305"

		cipher, err := NewContainer(cfg).EnvelopeCipher()
		require.NoError(t, err)
		assert.NotNil(t, cipher)
	})

	t.Run("UnsupportedAlgorithm", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.EnvelopeAlgorithm = "rot13"

		_, err := NewContainer(cfg).EnvelopeCipher()
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm)
	})
}

func TestContainer_MasterSecretChain(t *testing.T) {
	t.Run("Plaintext", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.PreviousMasterSecret = "old-secret"
		container := NewContainer(cfg)

		chain, err := container.MasterSecretChain()
		require.NoError(t, err)
		assert.Equal(t, []byte("m-secret"), chain.Active())
		assert.Equal(t, []byte("old-secret"), chain.Previous())

		require.NoError(t, container.Shutdown(context.Background()))
		assert.Nil(t, chain.Active())
	})

	t.Run("NotSet", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.MasterSecret = ""

		_, err := NewContainer(cfg).MasterSecretChain()
		assert.ErrorIs(t, err, cryptoDomain.ErrMasterSecretNotSet)
	})
}

func TestContainer_SealerRoundTrip(t *testing.T) {
	container := NewContainer(newTestConfig())
	defer func() {
		assert.NoError(t, container.Shutdown(context.Background()))
	}()

	sealer, err := container.Sealer()
	require.NoError(t, err)

	envelope, err := sealer.Seal(context.Background(), "sk_live_ABC123")
	require.NoError(t, err)

	plaintext, err := sealer.Open(context.Background(), envelope)
	require.NoError(t, err)
	assert.Equal(t, "sk_live_ABC123", plaintext)
}

func TestContainer_Metrics(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		container := NewContainer(newTestConfig())

		provider, err := container.MetricsProvider()
		require.NoError(t, err)
		assert.Nil(t, provider)

		bm, err := container.BusinessMetrics()
		require.NoError(t, err)
		assert.IsType(t, &metrics.NoOpBusinessMetrics{}, bm)

		server, err := container.MetricsServer()
		require.NoError(t, err)
		assert.Nil(t, server)
	})

	t.Run("Enabled", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.MetricsEnabled = true
		container := NewContainer(cfg)
		defer func() {
			assert.NoError(t, container.Shutdown(context.Background()))
		}()

		provider, err := container.MetricsProvider()
		require.NoError(t, err)
		require.NotNil(t, provider)

		bm, err := container.BusinessMetrics()
		require.NoError(t, err)
		assert.NotNil(t, bm)
		assert.NotEqual(t, &metrics.NoOpBusinessMetrics{}, bm)

		server, err := container.MetricsServer()
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestContainer_Singletons(t *testing.T) {
	container := NewContainer(newTestConfig())

	assert.Same(t, container.KMSService(), container.KMSService())
	assert.NotNil(t, container.TokenService())
	assert.NotNil(t, container.SignatureVerifier())
}

func TestContainer_ShutdownWithoutComponents(t *testing.T) {
	assert.NoError(t, NewContainer(newTestConfig()).Shutdown(context.Background()))
}
