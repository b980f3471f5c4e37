// Package service implements the cryptographic components that seal a PID
// authentication request: certificate loading, session key generation,
// AES-256-GCM payload encryption, SHA-256 integrity tagging, RSA PKCS#1 v1.5
// key encapsulation and envelope assembly.
package service

import (
	"context"
	"crypto/rsa"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
)

// CertificateStore parses the authority's trust certificate.
type CertificateStore interface {
	// Load parses PEM or DER certificate bytes. Fails with ErrCertificateLoad.
	Load(certificateBytes []byte) (*envelopeDomain.TrustCertificate, error)

	// LoadFrom reads the certificate bytes from source and parses them.
	LoadFrom(ctx context.Context, source ByteSource) (*envelopeDomain.TrustCertificate, error)
}

// SessionKeyGenerator produces one fresh symmetric key per transaction.
type SessionKeyGenerator interface {
	// Generate returns a new 256-bit key. Fails with ErrKeyGeneration.
	Generate() (*envelopeDomain.SessionKey, error)
}

// PayloadCipher authenticated-encrypts the PID payload.
type PayloadCipher interface {
	// Encrypt seals cleartext with IV and AAD derived from timestamp.
	Encrypt(cleartext []byte, key *envelopeDomain.SessionKey, timestamp envelopeDomain.Timestamp) ([]byte, error)

	// Decrypt opens ciphertext. Fails with ErrDecryptionFailed on tampering.
	Decrypt(ciphertext []byte, key *envelopeDomain.SessionKey, timestamp envelopeDomain.Timestamp) ([]byte, error)
}

// IntegrityTagger produces the encrypted digest carried in the hmac field.
type IntegrityTagger interface {
	// Tag hashes cleartext and encrypts the digest under key.
	Tag(cleartext []byte, key *envelopeDomain.SessionKey) ([]byte, error)

	// Untag decrypts an encrypted digest produced by Tag.
	Untag(encryptedDigest []byte, key *envelopeDomain.SessionKey) ([]byte, error)
}

// KeyEncapsulator wraps the session key for the verifier.
type KeyEncapsulator interface {
	// Wrap encrypts the raw key bytes under publicKey.
	Wrap(key *envelopeDomain.SessionKey, publicKey *rsa.PublicKey) ([]byte, error)

	// Unwrap recovers a session key with the matching private key.
	Unwrap(wrappedKey []byte, privateKey *rsa.PrivateKey) (*envelopeDomain.SessionKey, error)
}

// EnvelopeAssembler composes the encrypted fields into an Envelope.
type EnvelopeAssembler interface {
	// Assemble base64-encodes the fields. Panics on missing inputs.
	Assemble(
		wrappedKey []byte,
		ci envelopeDomain.CertificateIdentifier,
		encryptedDigest []byte,
		ciphertext []byte,
		dataType envelopeDomain.DataType,
	) envelopeDomain.Envelope
}

// EnvelopeOpener reverses the sealing pipeline with the verifier private key.
// It exists for self-test and verification tooling only.
type EnvelopeOpener interface {
	Open(
		envelope envelopeDomain.Envelope,
		timestamp envelopeDomain.Timestamp,
		privateKey *rsa.PrivateKey,
	) (*envelopeDomain.OpenedRequest, error)
}
