package domain

import (
	"encoding/base64"
)

// Envelope is one sealed secret: the KDF salt, the AEAD nonce, the
// authentication tag and the ciphertext.
//
// The serialized form is positional with fixed offsets:
//
//	salt[64] || nonce[12] || tag[16] || ciphertext[N]
//
// and is stored as standard base64 text. Envelopes are immutable; a stored
// secret is replaced by sealing a new envelope, never by editing one.
type Envelope struct {
	Salt       []byte
	Nonce      []byte
	Tag        []byte
	Ciphertext []byte
}

// Bytes returns the packed binary form of the envelope.
func (e Envelope) Bytes() []byte {
	buf := make([]byte, 0, SaltSize+NonceSize+TagSize+len(e.Ciphertext))
	buf = append(buf, e.Salt...)
	buf = append(buf, e.Nonce...)
	buf = append(buf, e.Tag...)
	buf = append(buf, e.Ciphertext...)
	return buf
}

// String returns the base64 text form of the envelope.
func (e Envelope) String() string {
	return base64.StdEncoding.EncodeToString(e.Bytes())
}

// EnvelopeFromBytes slices a packed envelope at its fixed offsets.
//
// The returned envelope copies its input, so later writes to data do not
// change it. Inputs shorter than MinEnvelopeSize fail with ErrDecryptionFailed.
func EnvelopeFromBytes(data []byte) (Envelope, error) {
	if len(data) < MinEnvelopeSize {
		return Envelope{}, ErrDecryptionFailed
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	nonceStart := SaltSize
	tagStart := nonceStart + NonceSize
	ciphertextStart := tagStart + TagSize

	return Envelope{
		Salt:       buf[:nonceStart:nonceStart],
		Nonce:      buf[nonceStart:tagStart:tagStart],
		Tag:        buf[tagStart:ciphertextStart:ciphertextStart],
		Ciphertext: buf[ciphertextStart:],
	}, nil
}

// ParseEnvelope decodes the base64 text form of an envelope. Decoding is
// strict: non-zero padding bits make the text invalid, so every stored
// character is covered.
func ParseEnvelope(content string) (Envelope, error) {
	data, err := base64.StdEncoding.Strict().DecodeString(content)
	if err != nil {
		return Envelope{}, ErrDecryptionFailed
	}
	return EnvelopeFromBytes(data)
}
