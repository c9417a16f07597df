// Package mocks provides mock implementations of crypto use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSealerUseCase is a mock implementation of SealerUseCase for testing.
type MockSealerUseCase struct {
	mock.Mock
}

// Seal mocks the Seal method of SealerUseCase.
func (m *MockSealerUseCase) Seal(ctx context.Context, plaintext string) (string, error) {
	args := m.Called(ctx, plaintext)
	return args.String(0), args.Error(1)
}

// Open mocks the Open method of SealerUseCase.
func (m *MockSealerUseCase) Open(ctx context.Context, envelope string) (string, error) {
	args := m.Called(ctx, envelope)
	return args.String(0), args.Error(1)
}

// Reseal mocks the Reseal method of SealerUseCase.
func (m *MockSealerUseCase) Reseal(ctx context.Context, envelope string) (string, error) {
	args := m.Called(ctx, envelope)
	return args.String(0), args.Error(1)
}
