package service

import (
	"crypto/sha256"
	"fmt"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
)

// EncryptedDigestSize is the tag length: a 32-byte SHA-256 digest plus one full
// block of PKCS#7 padding.
const EncryptedDigestSize = sha256.Size + 16

// IntegrityTaggerService computes SHA-256 over the cleartext payload and
// encrypts the digest with AES-256 in ECB mode with PKCS#7 padding.
//
// The construction is fixed by the verifying authority and is not an AEAD.
// Integrity of the payload itself is carried by the GCM tag in Data.
type IntegrityTaggerService struct {
	provider CipherProvider
}

// NewIntegrityTagger creates an integrity tagger on top of provider.
func NewIntegrityTagger(provider CipherProvider) *IntegrityTaggerService {
	return &IntegrityTaggerService{provider: provider}
}

// Digest returns the SHA-256 of cleartext.
func Digest(cleartext []byte) []byte {
	sum := sha256.Sum256(cleartext)
	return sum[:]
}

// Tag returns the encrypted digest of cleartext. Empty cleartext is accepted.
func (t *IntegrityTaggerService) Tag(cleartext []byte, key *envelopeDomain.SessionKey) ([]byte, error) {
	if len(key.Bytes()) != envelopeDomain.SessionKeySize {
		return nil, envelopeDomain.ErrInvalidSessionKey
	}

	block, err := t.provider.NewBlock(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create AES cipher: %v", envelopeDomain.ErrCipherProvider, err)
	}

	digest := Digest(cleartext)
	padded := pkcs7Pad(digest, block.BlockSize())
	defer envelopeDomain.Zero(padded)

	encrypted, err := ecbEncrypt(block, padded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", envelopeDomain.ErrCipherProvider, err)
	}
	return encrypted, nil
}

// Untag decrypts an encrypted digest and strips the padding. Any length or
// padding problem is reported as ErrDecryptionFailed.
func (t *IntegrityTaggerService) Untag(encryptedDigest []byte, key *envelopeDomain.SessionKey) ([]byte, error) {
	if len(key.Bytes()) != envelopeDomain.SessionKeySize {
		return nil, envelopeDomain.ErrInvalidSessionKey
	}

	block, err := t.provider.NewBlock(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create AES cipher: %v", envelopeDomain.ErrCipherProvider, err)
	}

	padded, err := ecbDecrypt(block, encryptedDigest)
	if err != nil {
		return nil, envelopeDomain.ErrDecryptionFailed
	}
	digest, err := pkcs7Unpad(padded, block.BlockSize())
	if err != nil {
		return nil, envelopeDomain.ErrDecryptionFailed
	}
	return digest, nil
}
