// Package service verifies and produces timestamped HMAC signature headers
// for webhook payloads.
package service

import (
	"time"
)

// SignatureVerifier checks webhook payloads against a signature header.
type SignatureVerifier interface {
	// Verify reports whether any v1 signature in header is the HMAC-SHA256 of
	// "<t>.<rawBody>" under secret. A mismatch is (false, nil). A header that
	// cannot be parsed returns ErrMalformedSignature, and a timestamp outside
	// the configured tolerance returns ErrTimestampOutsideTolerance.
	Verify(rawBody []byte, header string, secret []byte) (bool, error)

	// Sign builds a header carrying one v1 signature for rawBody at timestamp.
	Sign(rawBody []byte, secret []byte, timestamp time.Time) string
}
