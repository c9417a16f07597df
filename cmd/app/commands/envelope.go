package commands

import (
	"context"
	"fmt"

	cryptoUseCase "github.com/allisson/credseal/internal/crypto/usecase"
)

// RunEncrypt seals the plaintext read from stdin and writes the base64
// envelope to stdout.
func RunEncrypt(ctx context.Context, sealer cryptoUseCase.SealerUseCase, streams IOTuple) error {
	plaintext, err := readInput(streams.Reader)
	if err != nil {
		return err
	}

	envelope, err := sealer.Seal(ctx, plaintext)
	if err != nil {
		return fmt.Errorf("failed to encrypt: %w", err)
	}

	_, err = fmt.Fprintln(streams.Writer, envelope)
	return err
}

// RunDecrypt opens the envelope read from stdin and writes the plaintext to
// stdout without a trailing newline.
func RunDecrypt(ctx context.Context, sealer cryptoUseCase.SealerUseCase, streams IOTuple) error {
	envelope, err := readInput(streams.Reader)
	if err != nil {
		return err
	}

	plaintext, err := sealer.Open(ctx, envelope)
	if err != nil {
		return fmt.Errorf("failed to decrypt: %w", err)
	}

	_, err = fmt.Fprint(streams.Writer, plaintext)
	return err
}
