package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
	"github.com/allisson/pidseal/internal/envelope/service/mocks"
	"github.com/allisson/pidseal/internal/testutil"
)

func TestKeyEncapsulator_Wrap(t *testing.T) {
	privateKey := testutil.RSAKey(t)
	enc := NewKeyEncapsulator(NewStandardProvider(), nil)

	t.Run("PKCS#1 v1.5 decryptable with the private key", func(t *testing.T) {
		key := newTestKey(t)

		wrapped, err := enc.Wrap(key, &privateKey.PublicKey)
		require.NoError(t, err)
		assert.Len(t, wrapped, 256)

		raw, err := rsa.DecryptPKCS1v15(nil, privateKey, wrapped)
		require.NoError(t, err)
		assert.Equal(t, key.Bytes(), raw)
	})

	t.Run("not OAEP", func(t *testing.T) {
		wrapped, err := enc.Wrap(newTestKey(t), &privateKey.PublicKey)
		require.NoError(t, err)

		_, err = rsa.DecryptOAEP(sha256.New(), nil, privateKey, wrapped, nil)
		assert.Error(t, err)
	})

	t.Run("randomized padding", func(t *testing.T) {
		key := newTestKey(t)
		a, err := enc.Wrap(key, &privateKey.PublicKey)
		require.NoError(t, err)
		b, err := enc.Wrap(key, &privateKey.PublicKey)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("modulus too small", func(t *testing.T) {
		for _, bits := range []int{256, 512, 768} {
			wrapped, err := enc.Wrap(newTestKey(t), testutil.WeakRSAPublicKey(bits))
			assert.Nil(t, wrapped)
			assert.ErrorIs(t, err, envelopeDomain.ErrPublicKeyTooSmall, "bits=%d", bits)
			assert.ErrorIs(t, err, envelopeDomain.ErrEncryption)
			assert.NotErrorIs(t, err, envelopeDomain.ErrCipherProvider)
		}
	})

	t.Run("modulus boundary", func(t *testing.T) {
		provider := &mocks.MockCipherProvider{}
		provider.On("EncryptPKCS1v15", mock.Anything, mock.Anything, mock.Anything).
			Return(make([]byte, 43), nil).
			Once()
		boundary := NewKeyEncapsulator(provider, rand.Reader)

		_, err := boundary.Wrap(newTestKey(t), testutil.WeakRSAPublicKey(1023))
		assert.ErrorIs(t, err, envelopeDomain.ErrPublicKeyTooSmall)

		wrapped, err := boundary.Wrap(newTestKey(t), testutil.WeakRSAPublicKey(1024))
		require.NoError(t, err)
		assert.Len(t, wrapped, 43)
		provider.AssertExpectations(t)
	})

	t.Run("nil public key", func(t *testing.T) {
		wrapped, err := enc.Wrap(newTestKey(t), nil)
		assert.Nil(t, wrapped)
		assert.ErrorIs(t, err, envelopeDomain.ErrInvalidPublicKey)
	})

	t.Run("nil session key", func(t *testing.T) {
		wrapped, err := enc.Wrap(nil, &privateKey.PublicKey)
		assert.Nil(t, wrapped)
		assert.ErrorIs(t, err, envelopeDomain.ErrInvalidSessionKey)
	})

	t.Run("provider failure", func(t *testing.T) {
		provider := &mocks.MockCipherProvider{}
		provider.On("EncryptPKCS1v15", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("token removed"))

		wrapped, err := NewKeyEncapsulator(provider, nil).Wrap(newTestKey(t), &privateKey.PublicKey)
		assert.Nil(t, wrapped)
		assert.ErrorIs(t, err, envelopeDomain.ErrCipherProvider)
		assert.NotErrorIs(t, err, envelopeDomain.ErrPublicKeyTooSmall)
	})
}

func TestKeyEncapsulator_Unwrap(t *testing.T) {
	privateKey := testutil.RSAKey(t)
	enc := NewKeyEncapsulator(NewStandardProvider(), nil)
	key := newTestKey(t)

	wrapped, err := enc.Wrap(key, &privateKey.PublicKey)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		unwrapped, err := enc.Unwrap(wrapped, privateKey)
		require.NoError(t, err)
		assert.Equal(t, key.Bytes(), unwrapped.Bytes())
	})

	t.Run("corrupted", func(t *testing.T) {
		unwrapped, err := enc.Unwrap(flipByte(wrapped, 0), privateKey)
		assert.Nil(t, unwrapped)
		assert.ErrorIs(t, err, envelopeDomain.ErrDecryptionFailed)
	})

	t.Run("no private key", func(t *testing.T) {
		unwrapped, err := enc.Unwrap(wrapped, nil)
		assert.Nil(t, unwrapped)
		assert.ErrorIs(t, err, envelopeDomain.ErrVerifierNotConfigured)
	})
}
