// Package mocks provides mock implementations of credential use cases and
// repositories for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	credentialDomain "github.com/allisson/credseal/internal/credential/domain"
)

// MockCredentialUseCase is a mock implementation of CredentialUseCase for testing.
type MockCredentialUseCase struct {
	mock.Mock
}

// Store mocks the Store method.
func (m *MockCredentialUseCase) Store(
	ctx context.Context,
	name string,
	kind credentialDomain.Kind,
	plaintext string,
) (*credentialDomain.Credential, error) {
	args := m.Called(ctx, name, kind, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.Credential), args.Error(1)
}

// StoreKeyPair mocks the StoreKeyPair method.
func (m *MockCredentialUseCase) StoreKeyPair(
	ctx context.Context,
	name, publishable, secret string,
) ([]*credentialDomain.Credential, error) {
	args := m.Called(ctx, name, publishable, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialDomain.Credential), args.Error(1)
}

// Reveal mocks the Reveal method.
func (m *MockCredentialUseCase) Reveal(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

// Get mocks the Get method.
func (m *MockCredentialUseCase) Get(ctx context.Context, name string) (*credentialDomain.Credential, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.Credential), args.Error(1)
}

// List mocks the List method.
func (m *MockCredentialUseCase) List(ctx context.Context, offset, limit int) ([]*credentialDomain.Credential, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialDomain.Credential), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockCredentialUseCase) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// ResealAll mocks the ResealAll method.
func (m *MockCredentialUseCase) ResealAll(ctx context.Context, concurrency int) (int, error) {
	args := m.Called(ctx, concurrency)
	return args.Int(0), args.Error(1)
}

// MockCredentialRepository is a mock implementation of CredentialRepository for testing.
type MockCredentialRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockCredentialRepository) Create(ctx context.Context, credential *credentialDomain.Credential) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

// Update mocks the Update method.
func (m *MockCredentialRepository) Update(ctx context.Context, credential *credentialDomain.Credential) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

// GetByName mocks the GetByName method.
func (m *MockCredentialRepository) GetByName(ctx context.Context, name string) (*credentialDomain.Credential, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.Credential), args.Error(1)
}

// List mocks the List method.
func (m *MockCredentialRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*credentialDomain.Credential, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialDomain.Credential), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockCredentialRepository) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockTxManager is a mock implementation of database.TxManager that runs fn
// unless an error is configured.
type MockTxManager struct {
	mock.Mock
}

// WithTx mocks the WithTx method.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
