package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	authUseCase "github.com/allisson/credseal/internal/auth/usecase"
)

type createTokenOutput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

// RunCreateToken issues an API token and prints it. The plaintext token is
// shown only here; only its hash is stored.
func RunCreateToken(
	ctx context.Context,
	tokenUseCase authUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name, format string,
) error {
	output, err := tokenUseCase.Issue(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("token issued",
		slog.String("token_id", output.Token.ID.String()),
		slog.String("name", output.Token.Name))

	result := createTokenOutput{
		ID:    output.Token.ID.String(),
		Name:  output.Token.Name,
		Token: output.PlainToken,
	}
	return writeOutput(writer, format, result, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Token ID: %s\nName: %s\nToken: %s\n\nStore the token now, it cannot be shown again.\n",
			result.ID, result.Name, result.Token)
		return err
	})
}

// RunRevokeToken revokes the token with the given id.
func RunRevokeToken(
	ctx context.Context,
	tokenUseCase authUseCase.TokenUseCase,
	logger *slog.Logger,
	tokenID string,
) error {
	id, err := uuid.Parse(tokenID)
	if err != nil {
		return fmt.Errorf("invalid token id: %w", err)
	}

	if err := tokenUseCase.Revoke(ctx, id); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	logger.Info("token revoked", slog.String("token_id", id.String()))
	return nil
}
