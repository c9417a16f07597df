package service

import (
	"crypto/hmac"
	"time"

	webhookDomain "github.com/allisson/credseal/internal/webhook/domain"
)

// Option configures a SignatureVerifier.
type Option func(*signatureVerifier)

// WithTolerance rejects headers whose timestamp is more than d away from the
// current time. Zero, the default, disables the check. Header timestamps have
// whole-second precision, so a tolerance below one second can reject a header
// signed in the same second.
func WithTolerance(d time.Duration) Option {
	return func(v *signatureVerifier) {
		v.tolerance = d
	}
}

// WithClock replaces time.Now for the freshness check.
func WithClock(now func() time.Time) Option {
	return func(v *signatureVerifier) {
		v.now = now
	}
}

type signatureVerifier struct {
	tolerance time.Duration
	now       func() time.Time
}

// NewSignatureVerifier creates a SignatureVerifier.
func NewSignatureVerifier(opts ...Option) SignatureVerifier {
	v := &signatureVerifier{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *signatureVerifier) Verify(rawBody []byte, header string, secret []byte) (bool, error) {
	if len(secret) == 0 {
		return false, webhookDomain.ErrSigningSecretNotSet
	}

	parsed, err := ParseSignatureHeader(header)
	if err != nil {
		return false, err
	}

	if v.tolerance > 0 {
		// Sub saturates, so far-off timestamps cannot wrap around.
		skew := v.now().Sub(time.Unix(parsed.Timestamp, 0))
		if skew > v.tolerance || skew < -v.tolerance {
			return false, webhookDomain.ErrTimestampOutsideTolerance
		}
	}

	expected := []byte(ComputeSignature(secret, parsed.Timestamp, rawBody))

	// Every candidate is compared so timing does not reveal which one matched.
	matched := false
	for _, candidate := range parsed.Signatures {
		if hmac.Equal(expected, []byte(candidate)) {
			matched = true
		}
	}
	return matched, nil
}

func (v *signatureVerifier) Sign(rawBody []byte, secret []byte, timestamp time.Time) string {
	ts := timestamp.Unix()
	return webhookDomain.SignatureHeader{
		Timestamp:  ts,
		Signatures: []string{ComputeSignature(secret, ts, rawBody)},
	}.String()
}
