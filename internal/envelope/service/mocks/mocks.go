// Package mocks provides mock implementations of the envelope service interfaces.
package mocks

import (
	"crypto/cipher"
	"crypto/rsa"
	"io"

	"github.com/stretchr/testify/mock"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
)

// MockSessionKeyGenerator is a mock implementation of SessionKeyGenerator.
type MockSessionKeyGenerator struct {
	mock.Mock
}

// Generate mocks the Generate method.
func (m *MockSessionKeyGenerator) Generate() (*envelopeDomain.SessionKey, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*envelopeDomain.SessionKey), args.Error(1)
}

// MockPayloadCipher is a mock implementation of PayloadCipher.
type MockPayloadCipher struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method.
func (m *MockPayloadCipher) Encrypt(
	cleartext []byte,
	key *envelopeDomain.SessionKey,
	timestamp envelopeDomain.Timestamp,
) ([]byte, error) {
	args := m.Called(cleartext, key, timestamp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Decrypt mocks the Decrypt method.
func (m *MockPayloadCipher) Decrypt(
	ciphertext []byte,
	key *envelopeDomain.SessionKey,
	timestamp envelopeDomain.Timestamp,
) ([]byte, error) {
	args := m.Called(ciphertext, key, timestamp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockIntegrityTagger is a mock implementation of IntegrityTagger.
type MockIntegrityTagger struct {
	mock.Mock
}

// Tag mocks the Tag method.
func (m *MockIntegrityTagger) Tag(cleartext []byte, key *envelopeDomain.SessionKey) ([]byte, error) {
	args := m.Called(cleartext, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Untag mocks the Untag method.
func (m *MockIntegrityTagger) Untag(encryptedDigest []byte, key *envelopeDomain.SessionKey) ([]byte, error) {
	args := m.Called(encryptedDigest, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockKeyEncapsulator is a mock implementation of KeyEncapsulator.
type MockKeyEncapsulator struct {
	mock.Mock
}

// Wrap mocks the Wrap method.
func (m *MockKeyEncapsulator) Wrap(key *envelopeDomain.SessionKey, publicKey *rsa.PublicKey) ([]byte, error) {
	args := m.Called(key, publicKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Unwrap mocks the Unwrap method.
func (m *MockKeyEncapsulator) Unwrap(
	wrappedKey []byte,
	privateKey *rsa.PrivateKey,
) (*envelopeDomain.SessionKey, error) {
	args := m.Called(wrappedKey, privateKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*envelopeDomain.SessionKey), args.Error(1)
}

// MockEnvelopeAssembler is a mock implementation of EnvelopeAssembler.
type MockEnvelopeAssembler struct {
	mock.Mock
}

// Assemble mocks the Assemble method.
func (m *MockEnvelopeAssembler) Assemble(
	wrappedKey []byte,
	ci envelopeDomain.CertificateIdentifier,
	encryptedDigest []byte,
	ciphertext []byte,
	dataType envelopeDomain.DataType,
) envelopeDomain.Envelope {
	args := m.Called(wrappedKey, ci, encryptedDigest, ciphertext, dataType)
	return args.Get(0).(envelopeDomain.Envelope)
}

// MockEnvelopeOpener is a mock implementation of EnvelopeOpener.
type MockEnvelopeOpener struct {
	mock.Mock
}

// Open mocks the Open method.
func (m *MockEnvelopeOpener) Open(
	envelope envelopeDomain.Envelope,
	timestamp envelopeDomain.Timestamp,
	privateKey *rsa.PrivateKey,
) (*envelopeDomain.OpenedRequest, error) {
	args := m.Called(envelope, timestamp, privateKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*envelopeDomain.OpenedRequest), args.Error(1)
}

// MockCipherProvider is a mock implementation of CipherProvider.
type MockCipherProvider struct {
	mock.Mock
}

// Name mocks the Name method.
func (m *MockCipherProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

// NewBlock mocks the NewBlock method.
func (m *MockCipherProvider) NewBlock(key []byte) (cipher.Block, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(cipher.Block), args.Error(1)
}

// NewGCM mocks the NewGCM method.
func (m *MockCipherProvider) NewGCM(block cipher.Block) (cipher.AEAD, error) {
	args := m.Called(block)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(cipher.AEAD), args.Error(1)
}

// EncryptPKCS1v15 mocks the EncryptPKCS1v15 method.
func (m *MockCipherProvider) EncryptPKCS1v15(random io.Reader, pub *rsa.PublicKey, msg []byte) ([]byte, error) {
	args := m.Called(random, pub, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// DecryptPKCS1v15 mocks the DecryptPKCS1v15 method.
func (m *MockCipherProvider) DecryptPKCS1v15(priv *rsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	args := m.Called(priv, ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
