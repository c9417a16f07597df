package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/credseal/internal/auth/domain"
	authService "github.com/allisson/credseal/internal/auth/service"
)

const maxTokenNameLength = 255

type tokenUseCase struct {
	tokenRepo    TokenRepository
	tokenService authService.TokenService
	prefix       string
}

// Issue generates a token, stores its digest and returns the plaintext once.
func (t *tokenUseCase) Issue(ctx context.Context, name string) (*authDomain.IssueTokenOutput, error) {
	if name == "" || len(name) > maxTokenNameLength {
		return nil, authDomain.ErrInvalidTokenName
	}

	plainToken, err := t.tokenService.Generate(t.prefix)
	if err != nil {
		return nil, err
	}

	token := &authDomain.Token{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		TokenHash: t.tokenService.Hash(plainToken),
		CreatedAt: time.Now().UTC(),
	}

	if err := t.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &authDomain.IssueTokenOutput{
		Token:      token,
		PlainToken: plainToken,
	}, nil
}

// Authenticate looks a token up by digest.
func (t *tokenUseCase) Authenticate(ctx context.Context, tokenHash string) (*authDomain.Token, error) {
	token, err := t.tokenRepo.GetByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, authDomain.ErrTokenNotFound) {
			return nil, authDomain.ErrInvalidToken
		}
		return nil, err
	}

	if token.IsRevoked() {
		return nil, authDomain.ErrInvalidToken
	}

	return token, nil
}

// Revoke marks the token revoked as of now.
func (t *tokenUseCase) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	return t.tokenRepo.Revoke(ctx, tokenID, time.Now().UTC())
}

// NewTokenUseCase creates a TokenUseCase minting tokens with prefix.
func NewTokenUseCase(
	tokenRepo TokenRepository,
	tokenService authService.TokenService,
	prefix string,
) TokenUseCase {
	return &tokenUseCase{
		tokenRepo:    tokenRepo,
		tokenService: tokenService,
		prefix:       prefix,
	}
}
