package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionKey(t *testing.T) {
	t.Run("copies key material", func(t *testing.T) {
		raw := bytes.Repeat([]byte{0xAB}, SessionKeySize)

		key, err := NewSessionKey(raw)
		require.NoError(t, err)

		Zero(raw)
		assert.Equal(t, bytes.Repeat([]byte{0xAB}, SessionKeySize), key.Bytes())
	})

	t.Run("rejects wrong size", func(t *testing.T) {
		key, err := NewSessionKey(make([]byte, 16))
		assert.ErrorIs(t, err, ErrInvalidSessionKey)
		assert.ErrorIs(t, err, ErrEncryption)
		assert.Nil(t, key)
	})
}

func TestSessionKey_Zero(t *testing.T) {
	key, err := NewSessionKey(bytes.Repeat([]byte{1}, SessionKeySize))
	require.NoError(t, err)

	key.Zero()
	key.Zero()

	assert.Equal(t, make([]byte, SessionKeySize), key.Bytes())

	var nilKey *SessionKey
	assert.NotPanics(t, func() { nilKey.Zero() })
	assert.Nil(t, nilKey.Bytes())
}

func TestSessionKey_NeverExposed(t *testing.T) {
	raw := bytes.Repeat([]byte{0x42}, SessionKeySize)
	key, err := NewSessionKey(raw)
	require.NoError(t, err)

	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", key))
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%#v", key))

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("sealing", slog.Any("key", key))
	assert.Contains(t, buf.String(), `"key":"[REDACTED]"`)
	assert.NotContains(t, buf.String(), "QkJC")

	_, err = json.Marshal(map[string]any{"key": key})
	assert.ErrorIs(t, err, ErrSessionKeyNotSerializable)
}
