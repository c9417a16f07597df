package dto

import (
	"time"

	credentialDomain "github.com/allisson/credseal/internal/credential/domain"
)

// CredentialResponse is the public view of a credential. The envelope is not exposed.
type CredentialResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListCredentialsResponse represents a list of credentials.
type ListCredentialsResponse struct {
	Data []CredentialResponse `json:"data"`
}

// RevealCredentialResponse carries a decrypted credential value.
type RevealCredentialResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MapCredentialToResponse converts a domain credential to its API response.
func MapCredentialToResponse(credential *credentialDomain.Credential) CredentialResponse {
	return CredentialResponse{
		ID:        credential.ID.String(),
		Name:      credential.Name,
		Kind:      string(credential.Kind),
		CreatedAt: credential.CreatedAt,
		UpdatedAt: credential.UpdatedAt,
	}
}

// MapCredentialsToListResponse converts domain credentials to a list response.
func MapCredentialsToListResponse(credentials []*credentialDomain.Credential) ListCredentialsResponse {
	data := make([]CredentialResponse, 0, len(credentials))
	for _, credential := range credentials {
		data = append(data, MapCredentialToResponse(credential))
	}
	return ListCredentialsResponse{Data: data}
}
