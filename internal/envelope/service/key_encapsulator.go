package service

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"io"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
)

// KeyEncapsulatorService wraps session keys with RSA PKCS#1 v1.5 (not OAEP), as
// required by the verifying authority.
type KeyEncapsulatorService struct {
	provider CipherProvider
	random   io.Reader
}

// NewKeyEncapsulator creates a key encapsulator. A nil random means crypto/rand.Reader.
func NewKeyEncapsulator(provider CipherProvider, random io.Reader) *KeyEncapsulatorService {
	if random == nil {
		random = rand.Reader
	}
	return &KeyEncapsulatorService{provider: provider, random: random}
}

// Wrap encrypts the raw session key bytes under publicKey. The output length
// equals the modulus size in bytes.
func (e *KeyEncapsulatorService) Wrap(key *envelopeDomain.SessionKey, publicKey *rsa.PublicKey) ([]byte, error) {
	if len(key.Bytes()) != envelopeDomain.SessionKeySize {
		return nil, envelopeDomain.ErrInvalidSessionKey
	}
	if publicKey == nil || publicKey.N == nil || publicKey.N.Sign() <= 0 {
		return nil, envelopeDomain.ErrInvalidPublicKey
	}

	// The floor also covers the 32+11 bytes PKCS#1 v1.5 needs for a session key.
	if bits := publicKey.N.BitLen(); bits < envelopeDomain.MinRSAKeyBits {
		return nil, fmt.Errorf(
			"%w: %d-bit modulus, need at least %d",
			envelopeDomain.ErrPublicKeyTooSmall,
			bits,
			envelopeDomain.MinRSAKeyBits,
		)
	}

	wrapped, err := e.provider.EncryptPKCS1v15(e.random, publicKey, key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", envelopeDomain.ErrCipherProvider, err)
	}
	return wrapped, nil
}

// Unwrap recovers a session key with privateKey. Any failure is reported as
// ErrDecryptionFailed.
func (e *KeyEncapsulatorService) Unwrap(
	wrappedKey []byte,
	privateKey *rsa.PrivateKey,
) (*envelopeDomain.SessionKey, error) {
	if privateKey == nil {
		return nil, envelopeDomain.ErrVerifierNotConfigured
	}

	raw, err := e.provider.DecryptPKCS1v15(privateKey, wrappedKey)
	if err != nil {
		return nil, envelopeDomain.ErrDecryptionFailed
	}
	defer envelopeDomain.Zero(raw)

	key, err := envelopeDomain.NewSessionKey(raw)
	if err != nil {
		return nil, envelopeDomain.ErrDecryptionFailed
	}
	return key, nil
}
