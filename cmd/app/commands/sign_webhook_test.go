package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	webhookDomain "github.com/allisson/credseal/internal/webhook/domain"
	webhookService "github.com/allisson/credseal/internal/webhook/service"
)

func TestRunSignWebhook(t *testing.T) {
	payload := `{"id":"evt_1","type":"invoice.paid"}`
	verifier := webhookService.NewSignatureVerifier()

	t.Run("verifies", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunSignWebhook(verifier, IOTuple{
			Reader: strings.NewReader(payload + "\n"),
			Writer: &out,
		}, "whsec_test", 1700000000))

		header := strings.TrimSpace(out.String())
		assert.True(t, strings.HasPrefix(header, "t=1700000000,v1="))

		ok, err := verifier.Verify([]byte(payload), header, []byte("whsec_test"))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("empty-secret", func(t *testing.T) {
		err := RunSignWebhook(verifier, IOTuple{Reader: strings.NewReader(payload)}, "", 0)
		assert.ErrorIs(t, err, webhookDomain.ErrSigningSecretNotSet)
	})
}
