package service

import (
	"crypto/cipher"
	"fmt"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
)

// PayloadCipherService encrypts the PID payload with AES-256-GCM.
//
// The 12-byte IV is the last 12 bytes of the timestamp and the AAD is its last
// 16 bytes, so the verifier recomputes both from the plaintext timestamp. The
// output is ciphertext followed by the 16-byte authentication tag.
//
// Since the IV is not random, a session key must never encrypt twice.
type PayloadCipherService struct {
	provider CipherProvider
}

// NewPayloadCipher creates a payload cipher on top of provider.
func NewPayloadCipher(provider CipherProvider) *PayloadCipherService {
	return &PayloadCipherService{provider: provider}
}

// Encrypt seals cleartext under key.
func (c *PayloadCipherService) Encrypt(
	cleartext []byte,
	key *envelopeDomain.SessionKey,
	timestamp envelopeDomain.Timestamp,
) ([]byte, error) {
	aead, iv, aad, err := c.prepare(key, timestamp)
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, iv, cleartext, aad), nil
}

// Decrypt opens ciphertext produced by Encrypt with the same key and timestamp.
func (c *PayloadCipherService) Decrypt(
	ciphertext []byte,
	key *envelopeDomain.SessionKey,
	timestamp envelopeDomain.Timestamp,
) ([]byte, error) {
	aead, iv, aad, err := c.prepare(key, timestamp)
	if err != nil {
		return nil, err
	}

	cleartext, err := aead.Open(nil, iv, ciphertext, aad)
	if err != nil {
		return nil, envelopeDomain.ErrDecryptionFailed
	}
	return cleartext, nil
}

func (c *PayloadCipherService) prepare(
	key *envelopeDomain.SessionKey,
	timestamp envelopeDomain.Timestamp,
) (cipher.AEAD, []byte, []byte, error) {
	if len(key.Bytes()) != envelopeDomain.SessionKeySize {
		return nil, nil, nil, envelopeDomain.ErrInvalidSessionKey
	}

	iv, err := timestamp.IV()
	if err != nil {
		return nil, nil, nil, err
	}
	aad, err := timestamp.AAD()
	if err != nil {
		return nil, nil, nil, err
	}

	block, err := c.provider.NewBlock(key.Bytes())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: failed to create AES cipher: %v", envelopeDomain.ErrCipherProvider, err)
	}
	aead, err := c.provider.NewGCM(block)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: failed to create GCM: %v", envelopeDomain.ErrCipherProvider, err)
	}
	if aead.NonceSize() != envelopeDomain.IVSize {
		return nil, nil, nil, fmt.Errorf(
			"%w: unexpected GCM nonce size %d",
			envelopeDomain.ErrCipherProvider,
			aead.NonceSize(),
		)
	}

	return aead, iv, aad, nil
}
