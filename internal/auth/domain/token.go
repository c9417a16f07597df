// Package domain defines the access tokens that guard the management API.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is an issued bearer token. Only the SHA-256 digest of the token is
// stored; the plaintext is returned once, at issue time.
type Token struct {
	ID        uuid.UUID
	Name      string
	TokenHash string
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked reports whether the token has been revoked.
func (t *Token) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IssueTokenOutput carries a newly issued token and its one-time plaintext.
type IssueTokenOutput struct {
	Token      *Token
	PlainToken string
}
