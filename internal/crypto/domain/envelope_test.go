package domain_test

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/credseal/internal/crypto/domain"
	apperrors "github.com/allisson/credseal/internal/errors"
)

func testEnvelope() domain.Envelope {
	return domain.Envelope{
		Salt:       bytes.Repeat([]byte{0x01}, domain.SaltSize),
		Nonce:      bytes.Repeat([]byte{0x02}, domain.NonceSize),
		Tag:        bytes.Repeat([]byte{0x03}, domain.TagSize),
		Ciphertext: []byte("ciphertext"),
	}
}

func TestEnvelope_Bytes(t *testing.T) {
	env := testEnvelope()

	data := env.Bytes()

	require.Len(t, data, domain.MinEnvelopeSize+len("ciphertext"))
	assert.Equal(t, env.Salt, data[:64])
	assert.Equal(t, env.Nonce, data[64:76])
	assert.Equal(t, env.Tag, data[76:92])
	assert.Equal(t, []byte("ciphertext"), data[92:])
}

func TestEnvelopeFromBytes(t *testing.T) {
	t.Run("Success_SlicesAtFixedOffsets", func(t *testing.T) {
		env := testEnvelope()

		parsed, err := domain.EnvelopeFromBytes(env.Bytes())

		require.NoError(t, err)
		assert.Equal(t, env, parsed)
	})

	t.Run("Success_EmptyCiphertext", func(t *testing.T) {
		env := testEnvelope()
		env.Ciphertext = nil

		parsed, err := domain.EnvelopeFromBytes(env.Bytes())

		require.NoError(t, err)
		assert.Empty(t, parsed.Ciphertext)
	})

	t.Run("Success_CopiesInput", func(t *testing.T) {
		data := testEnvelope().Bytes()

		parsed, err := domain.EnvelopeFromBytes(data)
		require.NoError(t, err)

		data[0] = 0xFF
		assert.Equal(t, byte(0x01), parsed.Salt[0])
	})

	t.Run("Error_TooShort", func(t *testing.T) {
		_, err := domain.EnvelopeFromBytes(make([]byte, domain.MinEnvelopeSize-1))

		assert.ErrorIs(t, err, domain.ErrDecryptionFailed)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})
}

func TestParseEnvelope(t *testing.T) {
	t.Run("Success_RoundTripsString", func(t *testing.T) {
		env := testEnvelope()

		parsed, err := domain.ParseEnvelope(env.String())

		require.NoError(t, err)
		assert.Equal(t, env, parsed)
	})

	t.Run("Error_InvalidBase64", func(t *testing.T) {
		_, err := domain.ParseEnvelope("not base64!!")
		assert.ErrorIs(t, err, domain.ErrDecryptionFailed)
	})

	t.Run("Error_ShortBlob", func(t *testing.T) {
		_, err := domain.ParseEnvelope(base64.StdEncoding.EncodeToString([]byte("short")))
		assert.ErrorIs(t, err, domain.ErrDecryptionFailed)
	})
}

func TestParseAlgorithm(t *testing.T) {
	alg, err := domain.ParseAlgorithm("aes-gcm")
	require.NoError(t, err)
	assert.Equal(t, domain.AESGCM, alg)

	alg, err = domain.ParseAlgorithm("chacha20-poly1305")
	require.NoError(t, err)
	assert.Equal(t, domain.ChaCha20, alg)

	_, err = domain.ParseAlgorithm("des")
	assert.ErrorIs(t, err, domain.ErrUnsupportedAlgorithm)
}
