package domain

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockKMSService struct {
	mock.Mock
}

func (m *mockKMSService) OpenKeeper(ctx context.Context, uri string) (KMSKeeper, error) {
	args := m.Called(ctx, uri)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(KMSKeeper), args.Error(1)
}

type mockKMSKeeper struct {
	mock.Mock
}

func (m *mockKMSKeeper) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	args := m.Called(ctx, plaintext)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockKMSKeeper) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	args := m.Called(ctx, ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockKMSKeeper) Close() error {
	return m.Called().Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewMasterSecretChain(t *testing.T) {
	t.Run("Success_CopiesInput", func(t *testing.T) {
		active := []byte("m-secret")
		chain, err := NewMasterSecretChain(active, nil)
		require.NoError(t, err)

		active[0] = 'x'
		assert.Equal(t, []byte("m-secret"), chain.Active())
		assert.Nil(t, chain.Previous())
	})

	t.Run("Success_WithPrevious", func(t *testing.T) {
		chain, err := NewMasterSecretChain([]byte("new"), []byte("old"))
		require.NoError(t, err)
		assert.Equal(t, []byte("old"), chain.Previous())
	})

	t.Run("Error_EmptyActive", func(t *testing.T) {
		_, err := NewMasterSecretChain(nil, []byte("old"))
		assert.ErrorIs(t, err, ErrMasterSecretNotSet)
	})
}

func TestMasterSecretChain_Close(t *testing.T) {
	chain, err := NewMasterSecretChain([]byte("new"), []byte("old"))
	require.NoError(t, err)

	active := chain.Active()
	chain.Close()

	assert.Equal(t, []byte{0, 0, 0}, active)
	assert.Nil(t, chain.Active())
	assert.Nil(t, chain.Previous())
}

func TestLoadMasterSecretChain(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()

	t.Run("Success_PlaintextMode", func(t *testing.T) {
		chain, err := LoadMasterSecretChain(ctx, "m-secret", "old-secret", "", nil, logger)
		require.NoError(t, err)
		assert.Equal(t, []byte("m-secret"), chain.Active())
		assert.Equal(t, []byte("old-secret"), chain.Previous())
	})

	t.Run("Success_KMSMode", func(t *testing.T) {
		kms := &mockKMSService{}
		keeper := &mockKMSKeeper{}

		wrapped := base64.StdEncoding.EncodeToString([]byte("wrapped"))
		kms.On("OpenKeeper", ctx, "base64key://test").Return(keeper, nil)
		keeper.On("Decrypt", ctx, []byte("wrapped")).Return([]byte("unwrapped"), nil)
		keeper.On("Close").Return(nil)

		chain, err := LoadMasterSecretChain(ctx, wrapped, "", "base64key://test", kms, logger)
		require.NoError(t, err)
		assert.Equal(t, []byte("unwrapped"), chain.Active())
		assert.Nil(t, chain.Previous())

		kms.AssertExpectations(t)
		keeper.AssertExpectations(t)
	})

	t.Run("Error_MissingActive", func(t *testing.T) {
		_, err := LoadMasterSecretChain(ctx, "", "", "", nil, logger)
		assert.ErrorIs(t, err, ErrMasterSecretNotSet)
	})

	t.Run("Error_InvalidBase64InKMSMode", func(t *testing.T) {
		kms := &mockKMSService{}
		keeper := &mockKMSKeeper{}
		kms.On("OpenKeeper", ctx, "base64key://test").Return(keeper, nil)
		keeper.On("Close").Return(nil)

		_, err := LoadMasterSecretChain(ctx, "%%%", "", "base64key://test", kms, logger)
		assert.ErrorIs(t, err, ErrInvalidMasterSecretBase64)
	})

	t.Run("Error_KMSDecryptFails", func(t *testing.T) {
		kms := &mockKMSService{}
		keeper := &mockKMSKeeper{}
		wrapped := base64.StdEncoding.EncodeToString([]byte("wrapped"))
		kms.On("OpenKeeper", ctx, "base64key://test").Return(keeper, nil)
		keeper.On("Decrypt", ctx, []byte("wrapped")).Return(nil, errors.New("denied"))
		keeper.On("Close").Return(nil)

		_, err := LoadMasterSecretChain(ctx, wrapped, "", "base64key://test", kms, logger)
		assert.ErrorIs(t, err, ErrKMSDecryptionFailed)
	})

	t.Run("Error_OpenKeeperFails", func(t *testing.T) {
		kms := &mockKMSService{}
		kms.On("OpenKeeper", ctx, "bad://uri").Return(nil, errors.New("unknown scheme"))

		_, err := LoadMasterSecretChain(ctx, "x", "", "bad://uri", kms, logger)
		assert.Error(t, err)
	})
}
