package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	authDomain "github.com/allisson/credseal/internal/auth/domain"
	apperrors "github.com/allisson/credseal/internal/errors"
)

// TokenBytes is the amount of randomness in every generated token.
const TokenBytes = 32

type tokenService struct{}

// Generate creates a new prefixed token.
func (t *tokenService) Generate(prefix string) (string, error) {
	if !validPrefix(prefix) {
		return "", authDomain.ErrInvalidTokenPrefix
	}

	randomBytes := make([]byte, TokenBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", apperrors.Wrap(err, "failed to generate random token")
	}

	return prefix + "_" + base64.RawURLEncoding.EncodeToString(randomBytes), nil
}

// Hash returns hex(SHA-256(token)).
func (t *tokenService) Hash(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// validPrefix keeps the whole token within the URL-safe alphabet.
func validPrefix(prefix string) bool {
	if prefix == "" || len(prefix) > 32 {
		return false
	}
	for _, r := range prefix {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

// NewTokenService creates a TokenService.
func NewTokenService() TokenService {
	return &tokenService{}
}
