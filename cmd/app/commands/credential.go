package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	credentialDomain "github.com/allisson/credseal/internal/credential/domain"
	credentialUseCase "github.com/allisson/credseal/internal/credential/usecase"
)

// RunStoreCredential stores a credential whose plaintext is read from stdin,
// so the value never appears in shell history or process listings.
func RunStoreCredential(
	ctx context.Context,
	uc credentialUseCase.CredentialUseCase,
	logger *slog.Logger,
	streams IOTuple,
	name, kind string,
) error {
	parsedKind, err := credentialDomain.ParseKind(kind)
	if err != nil {
		return err
	}

	plaintext, err := readInput(streams.Reader)
	if err != nil {
		return err
	}

	credential, err := uc.Store(ctx, name, parsedKind, plaintext)
	if err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	logger.Info("credential stored",
		slog.String("name", credential.Name),
		slog.String("kind", string(credential.Kind)))

	_, err = fmt.Fprintf(streams.Writer, "Stored %s (%s)\n", credential.Name, credential.Kind)
	return err
}

type resealOutput struct {
	Resealed int `json:"resealed"`
}

// RunResealCredentials rewrites every credential under the active master
// secret. Run it after rotating MASTER_SECRET, with the old value still in
// PREVIOUS_MASTER_SECRET.
func RunResealCredentials(
	ctx context.Context,
	uc credentialUseCase.CredentialUseCase,
	logger *slog.Logger,
	writer io.Writer,
	concurrency int,
	format string,
) error {
	count, err := uc.ResealAll(ctx, concurrency)
	if err != nil {
		return fmt.Errorf("failed to reseal credentials after %d: %w", count, err)
	}

	logger.Info("credentials resealed", slog.Int("count", count))

	return writeOutput(writer, format, resealOutput{Resealed: count}, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Resealed %d credentials\n", count)
		return err
	})
}
