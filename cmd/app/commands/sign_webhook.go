package commands

import (
	"fmt"
	"time"

	webhookDomain "github.com/allisson/credseal/internal/webhook/domain"
	webhookService "github.com/allisson/credseal/internal/webhook/service"
)

// RunSignWebhook signs the payload read from stdin with secret and prints a
// signature header for it, for testing webhook endpoints by hand. A zero
// timestamp means now.
func RunSignWebhook(verifier webhookService.SignatureVerifier, streams IOTuple, secret string, timestamp int64) error {
	if secret == "" {
		return webhookDomain.ErrSigningSecretNotSet
	}

	signedAt := time.Now()
	if timestamp != 0 {
		signedAt = time.Unix(timestamp, 0)
	}

	payload, err := readInput(streams.Reader)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(streams.Writer, verifier.Sign([]byte(payload), []byte(secret), signedAt))
	return err
}
