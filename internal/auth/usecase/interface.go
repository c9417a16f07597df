// Package usecase issues, authenticates and revokes management API tokens.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/credseal/internal/auth/domain"
)

// TokenRepository defines the interface for Token persistence.
//
// Implementations: PostgreSQLTokenRepository and MySQLTokenRepository. Both
// participate in transactions started by database.TxManager.
type TokenRepository interface {
	Create(ctx context.Context, token *authDomain.Token) error
	GetByHash(ctx context.Context, tokenHash string) (*authDomain.Token, error)
	Revoke(ctx context.Context, tokenID uuid.UUID, revokedAt time.Time) error
}

// TokenUseCase defines the token lifecycle.
type TokenUseCase interface {
	// Issue creates a named token. The plaintext is only available in the
	// returned output.
	Issue(ctx context.Context, name string) (*authDomain.IssueTokenOutput, error)

	// Authenticate resolves a token digest to an active token. Unknown and
	// revoked tokens both return ErrInvalidToken.
	Authenticate(ctx context.Context, tokenHash string) (*authDomain.Token, error)

	// Revoke permanently disables a token.
	Revoke(ctx context.Context, tokenID uuid.UUID) error
}
