// Package domain defines the webhook signature header and the typed events
// delivered to webhook endpoints.
package domain

import (
	"github.com/allisson/credseal/internal/errors"
)

// Webhook verification errors.
var (
	// ErrMalformedSignature indicates the signature header could not be parsed:
	// it is empty, has a pair without '=', lacks or repeats the timestamp, has a
	// non-numeric timestamp or carries no v1 signature.
	ErrMalformedSignature = errors.Wrap(errors.ErrInvalidInput, "malformed signature header")

	// ErrSignatureMismatch indicates a well-formed header whose signatures do not
	// match the payload.
	ErrSignatureMismatch = errors.Wrap(errors.ErrUnauthorized, "signature mismatch")

	// ErrTimestampOutsideTolerance indicates the signed timestamp is too far from now.
	ErrTimestampOutsideTolerance = errors.Wrap(errors.ErrUnauthorized, "timestamp outside tolerance")

	// ErrSigningSecretNotSet indicates an empty shared secret was supplied.
	ErrSigningSecretNotSet = errors.Wrap(errors.ErrInvalidInput, "signing secret is empty")

	// ErrMalformedEvent indicates the payload is not a valid event object.
	ErrMalformedEvent = errors.Wrap(errors.ErrInvalidInput, "malformed event payload")

	// ErrEndpointNotFound indicates no signing secret is stored for the endpoint.
	ErrEndpointNotFound = errors.Wrap(errors.ErrNotFound, "webhook endpoint not found")
)
