package service

import (
	"crypto/rsa"
	"crypto/subtle"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
)

// EnvelopeOpenerService reverses the sealing pipeline the way the verifier does.
// It is used by the CLI open command and the verification use case.
type EnvelopeOpenerService struct {
	encapsulator KeyEncapsulator
	cipher       PayloadCipher
	tagger       IntegrityTagger
}

// NewEnvelopeOpener creates an envelope opener.
func NewEnvelopeOpener(
	encapsulator KeyEncapsulator,
	cipher PayloadCipher,
	tagger IntegrityTagger,
) *EnvelopeOpenerService {
	return &EnvelopeOpenerService{
		encapsulator: encapsulator,
		cipher:       cipher,
		tagger:       tagger,
	}
}

// Open unwraps the session key, decrypts the payload and checks the decrypted
// hmac against a freshly computed SHA-256 of the payload.
func (o *EnvelopeOpenerService) Open(
	envelope envelopeDomain.Envelope,
	timestamp envelopeDomain.Timestamp,
	privateKey *rsa.PrivateKey,
) (*envelopeDomain.OpenedRequest, error) {
	if err := timestamp.Validate(); err != nil {
		return nil, err
	}

	decoded, err := envelope.Decode()
	if err != nil {
		return nil, err
	}

	key, err := o.encapsulator.Unwrap(decoded.WrappedKey, privateKey)
	if err != nil {
		return nil, err
	}
	defer key.Zero()

	payload, err := o.cipher.Decrypt(decoded.Ciphertext, key, timestamp)
	if err != nil {
		return nil, err
	}

	digest, err := o.tagger.Untag(decoded.EncryptedDigest, key)
	if err != nil {
		envelopeDomain.Zero(payload)
		return nil, err
	}

	if subtle.ConstantTimeCompare(digest, Digest(payload)) != 1 {
		envelopeDomain.Zero(payload)
		return nil, envelopeDomain.ErrDigestMismatch
	}

	return &envelopeDomain.OpenedRequest{
		CI:       decoded.CI,
		DataType: decoded.DataType,
		Payload:  payload,
		Digest:   digest,
	}, nil
}
