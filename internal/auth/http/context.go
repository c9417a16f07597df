// Package http provides the bearer-token authentication middleware for the
// management API.
package http

import (
	"context"

	authDomain "github.com/allisson/credseal/internal/auth/domain"
)

// tokenKey is a context key type for storing the authenticated token.
type tokenKey struct{}

// WithToken stores an authenticated token in the context.
func WithToken(ctx context.Context, token *authDomain.Token) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// GetToken retrieves the authenticated token from the context.
// Returns (nil, false) if the authentication middleware did not run.
func GetToken(ctx context.Context) (*authDomain.Token, bool) {
	token, ok := ctx.Value(tokenKey{}).(*authDomain.Token)
	return token, ok
}
