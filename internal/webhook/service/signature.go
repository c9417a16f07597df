package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	webhookDomain "github.com/allisson/credseal/internal/webhook/domain"
)

// ParseSignatureHeader parses "t=<unix-seconds>,v1=<hex>[,v1=<hex>...]".
// The timestamp must be written without sign or leading zeros.
//
// Whitespace around pairs is ignored, as are empty pairs and unknown keys such
// as v0. Signatures are returned in header order.
func ParseSignatureHeader(header string) (webhookDomain.SignatureHeader, error) {
	var (
		parsed       webhookDomain.SignatureHeader
		hasTimestamp bool
	)

	if strings.TrimSpace(header) == "" {
		return parsed, webhookDomain.ErrMalformedSignature
	}

	for _, pair := range strings.Split(header, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return webhookDomain.SignatureHeader{}, webhookDomain.ErrMalformedSignature
		}

		switch strings.TrimSpace(key) {
		case webhookDomain.TimestampKey:
			if hasTimestamp {
				return webhookDomain.SignatureHeader{}, webhookDomain.ErrMalformedSignature
			}
			value = strings.TrimSpace(value)
			ts, err := strconv.ParseInt(value, 10, 64)
			// Only the canonical decimal form is accepted, so the signed text
			// "<t>.<body>" is the same whether built from the header or from ts.
			if err != nil || ts < 0 || strconv.FormatInt(ts, 10) != value {
				return webhookDomain.SignatureHeader{}, webhookDomain.ErrMalformedSignature
			}
			parsed.Timestamp = ts
			hasTimestamp = true
		case webhookDomain.SignatureKey:
			parsed.Signatures = append(parsed.Signatures, strings.TrimSpace(value))
		}
	}

	if !hasTimestamp || len(parsed.Signatures) == 0 {
		return webhookDomain.SignatureHeader{}, webhookDomain.ErrMalformedSignature
	}
	return parsed, nil
}

// ComputeSignature returns hex(HMAC-SHA256(secret, "<timestamp>.<rawBody>")).
func ComputeSignature(secret []byte, timestamp int64, rawBody []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte{'.'})
	mac.Write(rawBody)
	return hex.EncodeToString(mac.Sum(nil))
}
