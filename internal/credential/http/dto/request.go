// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	credentialDomain "github.com/allisson/credseal/internal/credential/domain"
	customValidation "github.com/allisson/credseal/internal/validation"
)

// StoreCredentialRequest contains the parameters for storing a credential.
type StoreCredentialRequest struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// Validate checks if the store credential request is valid.
func (r *StoreCredentialRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			validation.Length(1, credentialDomain.MaxNameLength),
			customValidation.Slug,
		),
		validation.Field(&r.Kind,
			validation.Required,
			validation.In(
				string(credentialDomain.SecretKey),
				string(credentialDomain.PublishableKey),
				string(credentialDomain.RestrictedKey),
				string(credentialDomain.WebhookSecret),
				string(credentialDomain.IntegrationToken),
			),
		),
		validation.Field(&r.Value,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// StoreKeyPairRequest contains a publishable/secret API key pair.
type StoreKeyPairRequest struct {
	Name           string `json:"name"`
	PublishableKey string `json:"publishable_key"`
	SecretKey      string `json:"secret_key"`
}

// Validate checks if the store key pair request is valid.
func (r *StoreKeyPairRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			validation.Length(1, credentialDomain.MaxNameLength-len("/publishable")),
			customValidation.Slug,
		),
		validation.Field(&r.PublishableKey, validation.Required, customValidation.NoWhitespace),
		validation.Field(&r.SecretKey, validation.Required, customValidation.NoWhitespace),
	)
}
