package domain

import (
	"github.com/allisson/credseal/internal/errors"
)

// Authentication errors.
var (
	// ErrTokenNotFound indicates a token with the specified ID or digest was not found.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrInvalidToken indicates the presented bearer token is unknown or
	// revoked. The two cases are not distinguished to callers.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrInvalidTokenName indicates an empty or oversized token name.
	ErrInvalidTokenName = errors.Wrap(errors.ErrInvalidInput, "token name must be between 1 and 255 characters")

	// ErrInvalidTokenPrefix indicates a prefix that is empty or not URL-safe.
	ErrInvalidTokenPrefix = errors.Wrap(errors.ErrInvalidInput, "token prefix must be 1-32 URL-safe characters")
)
