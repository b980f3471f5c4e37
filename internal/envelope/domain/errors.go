package domain

import (
	"github.com/allisson/pidseal/internal/errors"
)

// Certificate loading errors. These are fatal at startup and never occur per transaction.
var (
	// ErrCertificateLoad is the base error for every trust certificate loading failure.
	ErrCertificateLoad = errors.New("certificate load failed")

	// ErrCertificateMalformed indicates the certificate bytes are not a parseable X.509 certificate.
	ErrCertificateMalformed = errors.Wrap(ErrCertificateLoad, "malformed certificate")

	// ErrUnsupportedKeyAlgorithm indicates the certificate does not carry an RSA public key.
	ErrUnsupportedKeyAlgorithm = errors.Wrap(ErrCertificateLoad, "unsupported certificate key algorithm")

	// ErrCertificateKeyTooSmall indicates the RSA modulus is below MinRSAKeyBits.
	ErrCertificateKeyTooSmall = errors.Wrap(ErrCertificateLoad, "certificate key too small")

	// ErrCertificateExpired indicates the certificate expiry date is already in the past.
	ErrCertificateExpired = errors.Wrap(ErrCertificateLoad, "certificate expired")
)

// ErrKeyGeneration indicates the secure random source could not produce a session key.
// There is no fallback to a weaker source.
var ErrKeyGeneration = errors.New("session key generation failed")

// Encryption errors. Each one is fatal to the current transaction only.
var (
	// ErrEncryption is the base error for every failure inside the encryption components.
	ErrEncryption = errors.New("encryption failed")

	// ErrTimestampTooShort indicates the timestamp encodes to fewer than 16 bytes, so the
	// IV and AAD cannot be derived from it.
	ErrTimestampTooShort = errors.Wrap(ErrEncryption, "timestamp must encode to at least 16 bytes")

	// ErrPublicKeyTooSmall indicates the verifier public key modulus is below MinRSAKeyBits
	// or cannot hold the session key plus PKCS#1 v1.5 padding. This is a configuration
	// error, not a transient one.
	ErrPublicKeyTooSmall = errors.Wrap(ErrEncryption, "public key modulus too small for session key")

	// ErrInvalidPublicKey indicates a missing or structurally invalid RSA public key.
	ErrInvalidPublicKey = errors.Wrap(ErrEncryption, "invalid public key")

	// ErrInvalidSessionKey indicates a missing session key or one that is not 32 bytes.
	ErrInvalidSessionKey = errors.Wrap(ErrEncryption, "invalid session key")

	// ErrCipherProvider indicates the underlying cipher provider failed.
	ErrCipherProvider = errors.Wrap(ErrEncryption, "cipher provider failure")
)

// Verification errors, returned by the envelope opening tooling.
var (
	// ErrDecryptionFailed indicates authentication or padding failed while decrypting.
	// The specific cause is not disclosed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrDigestMismatch indicates the decrypted hmac does not match the digest of the
	// decrypted payload.
	ErrDigestMismatch = errors.Wrap(errors.ErrInvalidInput, "integrity digest mismatch")

	// ErrInvalidDataType indicates a data type other than "X" or "P".
	ErrInvalidDataType = errors.Wrap(errors.ErrInvalidInput, "invalid data type")

	// ErrInvalidEnvelope indicates an envelope field is missing or not valid base64.
	ErrInvalidEnvelope = errors.Wrap(errors.ErrInvalidInput, "invalid envelope")

	// ErrPrivateKeyLoad indicates the verifier private key could not be parsed.
	ErrPrivateKeyLoad = errors.New("private key load failed")

	// ErrVerifierNotConfigured indicates no verifier private key was configured.
	ErrVerifierNotConfigured = errors.Wrap(errors.ErrUnavailable, "verifier private key not configured")
)

// Cipher provider lifecycle errors.
var (
	// ErrProviderNotInitialized indicates no cipher provider was registered before use.
	ErrProviderNotInitialized = errors.New("cipher provider not initialized")

	// ErrProviderConflict indicates a different cipher provider is already registered.
	ErrProviderConflict = errors.New("a different cipher provider is already registered")
)

// ErrSessionKeyNotSerializable is returned by every attempt to serialize a SessionKey.
var ErrSessionKeyNotSerializable = errors.New("session key must not be serialized")
