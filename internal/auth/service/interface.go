// Package service mints and digests the opaque bearer tokens used by the
// management API.
package service

// TokenService generates opaque tokens and computes their lookup digests.
type TokenService interface {
	// Generate returns "<prefix>_<43 url-safe characters>" carrying 32 bytes
	// from the system CSPRNG.
	Generate(prefix string) (string, error)

	// Hash returns the hex SHA-256 digest of token. The digest is the only
	// form of a token that is ever stored.
	Hash(token string) string
}
