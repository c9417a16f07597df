package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/credseal/internal/crypto/domain"
)

// masterSecretSize is the amount of random material in a generated secret.
const masterSecretSize = 32

// RunCreateMasterSecret generates a random master secret and prints the
// environment variables that configure it.
//
// Without kmsKeyURI the secret is printed base64-encoded and used verbatim
// as the PBKDF2 passphrase. With kmsKeyURI the raw secret is wrapped by the
// KMS key and the ciphertext is printed instead; the server unwraps it at
// startup. The raw secret is zeroed before returning.
func RunCreateMasterSecret(
	ctx context.Context,
	kmsService cryptoDomain.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	kmsKeyURI string,
) error {
	secret := make([]byte, masterSecretSize)
	defer cryptoDomain.Zero(secret)

	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("failed to generate master secret: %w", err)
	}

	if kmsKeyURI == "" {
		logger.Warn("master secret generated in plaintext mode, use --kms-key-uri for production")
		_, err := fmt.Fprintf(writer, "MASTER_SECRET=\"%s\"\n", base64.StdEncoding.EncodeToString(secret))
		return err
	}

	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Error("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	ciphertext, err := keeper.Encrypt(ctx, secret)
	if err != nil {
		return fmt.Errorf("failed to encrypt master secret with KMS: %w", err)
	}

	logger.Info("master secret wrapped with KMS")

	_, err = fmt.Fprintf(writer,
		"KMS_KEY_URI=\"%s\"\nMASTER_SECRET=\"%s\"\n",
		kmsKeyURI,
		base64.StdEncoding.EncodeToString(ciphertext),
	)
	return err
}
