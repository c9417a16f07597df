package domain

// Algorithm represents the AEAD algorithm used to seal envelopes.
//
// Both supported algorithms use a 256-bit key, a 12-byte nonce and a 16-byte
// authentication tag, so envelopes produced by either share the same byte
// layout. The envelope itself does not record which algorithm sealed it; the
// algorithm is a deployment-wide setting.
type Algorithm string

const (
	// AESGCM represents AES-256-GCM. Preferred on CPUs with AES-NI.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents ChaCha20-Poly1305. Preferred where AES hardware
	// acceleration is unavailable.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// Envelope layout and key derivation parameters.
const (
	// SaltSize is the length of the per-envelope KDF salt.
	SaltSize = 64

	// NonceSize is the AEAD nonce length.
	NonceSize = 12

	// TagSize is the AEAD authentication tag length.
	TagSize = 16

	// KeySize is the derived key length (256 bits).
	KeySize = 32

	// KDFIterations is the default PBKDF2 iteration count.
	KDFIterations = 100_000

	// MinEnvelopeSize is the size of an envelope sealing the empty string.
	MinEnvelopeSize = SaltSize + NonceSize + TagSize
)

// ParseAlgorithm converts a configuration value into an Algorithm.
func ParseAlgorithm(value string) (Algorithm, error) {
	switch Algorithm(value) {
	case AESGCM:
		return AESGCM, nil
	case ChaCha20:
		return ChaCha20, nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}
