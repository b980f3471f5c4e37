package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
)

const testTimestamp = "2023-10-27T12:00:00"

func newTestKey(t *testing.T) *envelopeDomain.SessionKey {
	t.Helper()
	key, err := NewSessionKeyGenerator(nil).Generate()
	require.NoError(t, err)
	return key
}

func fixedKey(t *testing.T, b byte) *envelopeDomain.SessionKey {
	t.Helper()
	key, err := envelopeDomain.NewSessionKey(bytes.Repeat([]byte{b}, envelopeDomain.SessionKeySize))
	require.NoError(t, err)
	return key
}

func flipByte(b []byte, i int) []byte {
	out := append([]byte(nil), b...)
	out[i] ^= 0x01
	return out
}
