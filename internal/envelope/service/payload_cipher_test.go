package service

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
	"github.com/allisson/pidseal/internal/envelope/service/mocks"
)

func TestPayloadCipher_Encrypt(t *testing.T) {
	c := NewPayloadCipher(NewStandardProvider())
	ts := envelopeDomain.Timestamp(testTimestamp)

	t.Run("output is ciphertext plus 16-byte tag", func(t *testing.T) {
		key := newTestKey(t)
		for _, size := range []int{0, 1, 15, 16, 17, 1024} {
			out, err := c.Encrypt(make([]byte, size), key, ts)
			require.NoError(t, err)
			assert.Len(t, out, size+16)
		}
	})

	t.Run("IV and AAD come from the timestamp tail", func(t *testing.T) {
		key := fixedKey(t, 0x42)
		cleartext := []byte("<Pid ts=\"2023-10-27T12:00:00\"/>")

		out, err := c.Encrypt(cleartext, key, ts)
		require.NoError(t, err)

		block, err := aes.NewCipher(key.Bytes())
		require.NoError(t, err)
		gcm, err := cipher.NewGCM(block)
		require.NoError(t, err)

		expected := gcm.Seal(nil, []byte("-27T12:00:00"), cleartext, []byte("3-10-27T12:00:00"))
		assert.Equal(t, expected, out)
	})

	t.Run("deterministic for same key and timestamp", func(t *testing.T) {
		key := fixedKey(t, 0x01)
		a, err := c.Encrypt([]byte("pid"), key, ts)
		require.NoError(t, err)
		b, err := c.Encrypt([]byte("pid"), key, ts)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("timestamp too short", func(t *testing.T) {
		out, err := c.Encrypt([]byte("pid"), newTestKey(t), envelopeDomain.Timestamp("2023-10-27T12:0"))
		assert.Nil(t, out)
		assert.ErrorIs(t, err, envelopeDomain.ErrTimestampTooShort)
		assert.ErrorIs(t, err, envelopeDomain.ErrEncryption)
	})

	t.Run("exactly 16 bytes is accepted", func(t *testing.T) {
		out, err := c.Encrypt([]byte("pid"), newTestKey(t), envelopeDomain.Timestamp("2023-10-27T12:00"))
		require.NoError(t, err)
		assert.Len(t, out, 3+16)
	})

	t.Run("nil key", func(t *testing.T) {
		out, err := c.Encrypt([]byte("pid"), nil, ts)
		assert.Nil(t, out)
		assert.ErrorIs(t, err, envelopeDomain.ErrInvalidSessionKey)
	})

	t.Run("provider failure", func(t *testing.T) {
		provider := &mocks.MockCipherProvider{}
		provider.On("NewBlock", mock.Anything).Return(nil, errors.New("hsm offline"))

		out, err := NewPayloadCipher(provider).Encrypt([]byte("pid"), newTestKey(t), ts)
		assert.Nil(t, out)
		assert.ErrorIs(t, err, envelopeDomain.ErrCipherProvider)
		assert.ErrorIs(t, err, envelopeDomain.ErrEncryption)
		provider.AssertExpectations(t)
	})
}

func TestPayloadCipher_Decrypt(t *testing.T) {
	c := NewPayloadCipher(NewStandardProvider())
	ts := envelopeDomain.Timestamp(testTimestamp)
	key := newTestKey(t)
	cleartext := []byte("<Pid><Bio type=\"FID\">...</Bio></Pid>")

	ciphertext, err := c.Encrypt(cleartext, key, ts)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		out, err := c.Decrypt(ciphertext, key, ts)
		require.NoError(t, err)
		assert.Equal(t, cleartext, out)
	})

	t.Run("any flipped byte is detected", func(t *testing.T) {
		for i := range ciphertext {
			out, err := c.Decrypt(flipByte(ciphertext, i), key, ts)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, envelopeDomain.ErrDecryptionFailed)
		}
	})

	t.Run("different AAD", func(t *testing.T) {
		other := envelopeDomain.Timestamp("2023-10-28T12:00:00")
		out, err := c.Decrypt(ciphertext, key, other)
		assert.Nil(t, out)
		assert.ErrorIs(t, err, envelopeDomain.ErrDecryptionFailed)
	})

	t.Run("wrong key", func(t *testing.T) {
		out, err := c.Decrypt(ciphertext, newTestKey(t), ts)
		assert.Nil(t, out)
		assert.ErrorIs(t, err, envelopeDomain.ErrDecryptionFailed)
	})

	t.Run("truncated", func(t *testing.T) {
		out, err := c.Decrypt(ciphertext[:10], key, ts)
		assert.Nil(t, out)
		assert.ErrorIs(t, err, envelopeDomain.ErrDecryptionFailed)
	})
}
