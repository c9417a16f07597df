package domain

import (
	"strings"
)

// KeyClass is the role of a payment-processor API key.
type KeyClass string

// Key classes, named after their prefixes.
const (
	Publishable KeyClass = "pk"
	Secret      KeyClass = "sk"
	Restricted  KeyClass = "rk"
)

// Mode separates test material from live material.
type Mode string

// Key modes.
const (
	Test Mode = "test"
	Live Mode = "live"
)

// WebhookSecretPrefix starts every webhook signing secret.
const WebhookSecretPrefix = "whsec_"

// APIKeyInfo describes a recognized API key.
type APIKeyInfo struct {
	Class KeyClass
	Mode  Mode
}

// ParseAPIKey recognizes keys shaped "<pk|sk|rk>_<test|live>_<body>".
// This is a sanity check on the prefix convention only.
func ParseAPIKey(key string) (APIKeyInfo, error) {
	parts := strings.SplitN(key, "_", 3)
	if len(parts) != 3 || parts[2] == "" {
		return APIKeyInfo{}, ErrInvalidKeyFormat
	}

	var info APIKeyInfo
	switch KeyClass(parts[0]) {
	case Publishable, Secret, Restricted:
		info.Class = KeyClass(parts[0])
	default:
		return APIKeyInfo{}, ErrInvalidKeyFormat
	}

	switch Mode(parts[1]) {
	case Test, Live:
		info.Mode = Mode(parts[1])
	default:
		return APIKeyInfo{}, ErrInvalidKeyFormat
	}

	return info, nil
}

// ValidateKeyPair checks a publishable/secret pair: the first must be a
// publishable key, the second a secret or restricted key, and both must be
// test or both live.
func ValidateKeyPair(publishable, secret string) error {
	pk, err := ParseAPIKey(publishable)
	if err != nil {
		return err
	}
	if pk.Class != Publishable {
		return ErrInvalidKeyFormat
	}

	sk, err := ParseAPIKey(secret)
	if err != nil {
		return err
	}
	if sk.Class != Secret && sk.Class != Restricted {
		return ErrInvalidKeyFormat
	}

	if pk.Mode != sk.Mode {
		return ErrEnvironmentMismatch
	}
	return nil
}

// KindForClass maps an API key class to the credential kind that stores it.
func KindForClass(class KeyClass) Kind {
	switch class {
	case Publishable:
		return PublishableKey
	case Restricted:
		return RestrictedKey
	default:
		return SecretKey
	}
}

// ValidatePlaintext applies the format check for kind.
func ValidatePlaintext(kind Kind, plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPlaintext
	}

	switch kind {
	case SecretKey, PublishableKey, RestrictedKey:
		info, err := ParseAPIKey(plaintext)
		if err != nil {
			return err
		}
		if KindForClass(info.Class) != kind {
			return ErrInvalidKeyFormat
		}
	case WebhookSecret:
		if !strings.HasPrefix(plaintext, WebhookSecretPrefix) || len(plaintext) == len(WebhookSecretPrefix) {
			return ErrInvalidKeyFormat
		}
	case IntegrationToken:
	default:
		return ErrInvalidKind
	}
	return nil
}
