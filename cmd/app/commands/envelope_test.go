package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/credseal/internal/crypto/domain"
	cryptoService "github.com/allisson/credseal/internal/crypto/service"
	cryptoUseCase "github.com/allisson/credseal/internal/crypto/usecase"
	cryptoMocks "github.com/allisson/credseal/internal/crypto/usecase/mocks"
)

func newTestSealer(t *testing.T) cryptoUseCase.SealerUseCase {
	t.Helper()

	chain, err := cryptoDomain.NewMasterSecretChain([]byte("m-secret"), nil)
	require.NoError(t, err)
	t.Cleanup(chain.Close)

	cipher := cryptoService.NewEnvelopeCipher(
		cryptoService.NewPBKDF2KDF(1000),
		cryptoService.NewAEADManager(),
		cryptoDomain.AESGCM,
	)
	return cryptoUseCase.NewSealer(cipher, chain)
}

func TestRunEncryptDecrypt(t *testing.T) {
	ctx := context.Background()
	sealer := newTestSealer(t)

	var envelope bytes.Buffer
	require.NoError(t, RunEncrypt(ctx, sealer, IOTuple{
		Reader: strings.NewReader("sk_live_ABC123\n"),
		Writer: &envelope,
	}))
	assert.NotContains(t, envelope.String(), "sk_live_ABC123")

	var plaintext bytes.Buffer
	require.NoError(t, RunDecrypt(ctx, sealer, IOTuple{
		Reader: strings.NewReader(envelope.String()),
		Writer: &plaintext,
	}))
	assert.Equal(t, "sk_live_ABC123", plaintext.String())
}

func TestRunDecrypt_Tampered(t *testing.T) {
	err := RunDecrypt(context.Background(), newTestSealer(t), IOTuple{
		Reader: strings.NewReader("AAAA"),
		Writer: &bytes.Buffer{},
	})
	assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
}

func TestRunEncrypt_SealError(t *testing.T) {
	ctx := context.Background()
	sealer := &cryptoMocks.MockSealerUseCase{}
	sealer.On("Seal", ctx, "x").Return("", cryptoDomain.ErrKeyDerivation)

	err := RunEncrypt(ctx, sealer, IOTuple{Reader: strings.NewReader("x"), Writer: &bytes.Buffer{}})
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyDerivation)
	sealer.AssertExpectations(t)
}
