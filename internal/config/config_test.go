package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 8080, cfg.ServerPort)
				assert.Equal(t, "postgres", cfg.DBDriver)
				assert.Equal(t, 25, cfg.DBMaxOpenConnections)
				assert.Equal(t, 5, cfg.DBMaxIdleConnections)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "", cfg.MasterSecret)
				assert.Equal(t, 100000, cfg.KDFIterations)
				assert.Equal(t, "aes-gcm", cfg.EnvelopeAlgorithm)
				assert.Equal(t, "cs", cfg.TokenPrefix)
				assert.Equal(t, "Stripe-Signature", cfg.WebhookSignatureHeader)
				assert.Equal(t, 300*time.Second, cfg.WebhookTimestampTolerance)
				assert.True(t, cfg.RateLimitWebhookEnabled)
				assert.Equal(t, "credseal", cfg.MetricsNamespace)
			},
		},
		{
			name: "load custom database configuration",
			envVars: map[string]string{
				"DB_DRIVER":                    "mysql",
				"DB_CONNECTION_STRING":         "user:password@tcp(localhost:3306)/testdb",
				"DB_MAX_OPEN_CONNECTIONS":      "50",
				"DB_MAX_IDLE_CONNECTIONS":      "10",
				"DB_CONN_MAX_LIFETIME_MINUTES": "10",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mysql", cfg.DBDriver)
				assert.Equal(t, "user:password@tcp(localhost:3306)/testdb", cfg.DBConnectionString)
				assert.Equal(t, 50, cfg.DBMaxOpenConnections)
				assert.Equal(t, 10, cfg.DBMaxIdleConnections)
				assert.Equal(t, 10*time.Minute, cfg.DBConnMaxLifetime)
			},
		},
		{
			name: "load envelope configuration",
			envVars: map[string]string{
				"MASTER_SECRET":          "m-secret",
				"PREVIOUS_MASTER_SECRET": "old-secret",
				"KMS_KEY_URI":            "base64key://",
				"KDF_ITERATIONS":         "200000",
				"ENVELOPE_ALGORITHM":     "chacha20-poly1305",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "m-secret", cfg.MasterSecret)
				assert.Equal(t, "old-secret", cfg.PreviousMasterSecret)
				assert.Equal(t, "base64key://", cfg.KMSKeyURI)
				assert.Equal(t, 200000, cfg.KDFIterations)
				assert.Equal(t, "chacha20-poly1305", cfg.EnvelopeAlgorithm)
			},
		},
		{
			name: "load webhook configuration",
			envVars: map[string]string{
				"WEBHOOK_SIGNATURE_HEADER":            "X-Signature",
				"WEBHOOK_TIMESTAMP_TOLERANCE_SECONDS": "0",
				"RATE_LIMIT_WEBHOOK_ENABLED":          "false",
				"RATE_LIMIT_WEBHOOK_REQUESTS_PER_SEC": "2.5",
				"RATE_LIMIT_WEBHOOK_BURST":            "3",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "X-Signature", cfg.WebhookSignatureHeader)
				assert.Equal(t, time.Duration(0), cfg.WebhookTimestampTolerance)
				assert.False(t, cfg.RateLimitWebhookEnabled)
				assert.Equal(t, 2.5, cfg.RateLimitWebhookRequestsPerSec)
				assert.Equal(t, 3, cfg.RateLimitWebhookBurst)
			},
		},
		{
			name: "load custom log level",
			envVars: map[string]string{
				"LOG_LEVEL": "debug",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "debug", cfg.GetGinMode())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()

			for key, value := range tt.envVars {
				err := os.Setenv(key, value)
				require.NoError(t, err)
			}

			cfg := Load()

			tt.validate(t, cfg)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	os.Clearenv()
	cfg := Load()
	assert.NoError(t, cfg.Validate())

	invalid := []func(c *Config){
		func(c *Config) { c.DBDriver = "sqlite" },
		func(c *Config) { c.KDFIterations = 0 },
		func(c *Config) { c.KDFIterations = 1 },
		func(c *Config) { c.KDFIterations = MinKDFIterations - 1 },
		func(c *Config) { c.EnvelopeAlgorithm = "aes-cbc" },
		func(c *Config) { c.TokenPrefix = "" },
		func(c *Config) { c.WebhookSignatureHeader = "" },
		func(c *Config) { c.WebhookTimestampTolerance = -time.Second },
	}

	for i, mutate := range invalid {
		c := *cfg
		mutate(&c)
		assert.Error(t, c.Validate(), "case %d", i)
	}
}

func TestGetGinMode(t *testing.T) {
	assert.Equal(t, "release", (&Config{LogLevel: "info"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "bogus"}).GetGinMode())
}
