package service

import (
	"context"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
	"github.com/allisson/pidseal/internal/testutil"
)

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestCertificateStore_Load(t *testing.T) {
	key := testutil.RSAKey(t)
	notAfter := time.Date(2030, 3, 15, 12, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewCertificateStore(WithClock(fixedClock(now)))

	t.Run("PEM", func(t *testing.T) {
		cert, err := store.Load(testutil.CertificatePEM(t, key, notAfter))
		require.NoError(t, err)

		assert.Equal(t, envelopeDomain.CertificateIdentifier("20300315"), cert.Identifier)
		assert.True(t, cert.NotAfter.Equal(notAfter))
		assert.Equal(t, key.PublicKey.N, cert.PublicKey.N)
		assert.Equal(t, 2048, cert.KeyBits())
		assert.Len(t, cert.Fingerprint(), 64)
	})

	t.Run("DER", func(t *testing.T) {
		cert, err := store.Load(testutil.CertificateDER(t, key, notAfter))
		require.NoError(t, err)
		assert.Equal(t, envelopeDomain.CertificateIdentifier("20300315"), cert.Identifier)
	})

	t.Run("identifier in configured location", func(t *testing.T) {
		ist, err := time.LoadLocation("Asia/Kolkata")
		require.NoError(t, err)

		lateNotAfter := time.Date(2030, 3, 15, 20, 0, 0, 0, time.UTC)
		istStore := NewCertificateStore(WithLocation(ist), WithClock(fixedClock(now)))

		cert, err := istStore.Load(testutil.CertificatePEM(t, key, lateNotAfter))
		require.NoError(t, err)
		assert.Equal(t, envelopeDomain.CertificateIdentifier("20300316"), cert.Identifier)
	})

	t.Run("empty input", func(t *testing.T) {
		cert, err := store.Load(nil)
		assert.Nil(t, cert)
		assert.ErrorIs(t, err, envelopeDomain.ErrCertificateMalformed)
		assert.ErrorIs(t, err, envelopeDomain.ErrCertificateLoad)
	})

	t.Run("garbage", func(t *testing.T) {
		cert, err := store.Load([]byte("not a certificate"))
		assert.Nil(t, cert)
		assert.ErrorIs(t, err, envelopeDomain.ErrCertificateMalformed)
	})

	t.Run("wrong PEM block", func(t *testing.T) {
		cert, err := store.Load(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: []byte{1, 2}}))
		assert.Nil(t, cert)
		assert.ErrorIs(t, err, envelopeDomain.ErrCertificateMalformed)
	})

	t.Run("non-RSA key", func(t *testing.T) {
		cert, err := store.Load(testutil.ECDSACertificatePEM(t, notAfter))
		assert.Nil(t, cert)
		assert.ErrorIs(t, err, envelopeDomain.ErrUnsupportedKeyAlgorithm)
		assert.ErrorIs(t, err, envelopeDomain.ErrCertificateLoad)
	})

	t.Run("768-bit key", func(t *testing.T) {
		weak := testutil.IssuedCertificatePEM(t, testutil.WeakRSAPublicKey(768), key, notAfter)

		cert, err := store.Load(weak)
		assert.Nil(t, cert)
		assert.ErrorIs(t, err, envelopeDomain.ErrCertificateKeyTooSmall)
		assert.ErrorIs(t, err, envelopeDomain.ErrCertificateLoad)
	})

	t.Run("1024-bit key", func(t *testing.T) {
		cert, err := store.Load(testutil.IssuedCertificatePEM(t, testutil.WeakRSAPublicKey(1024), key, notAfter))
		require.NoError(t, err)
		assert.Equal(t, 1024, cert.KeyBits())
	})

	t.Run("expired", func(t *testing.T) {
		expired := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
		cert, err := store.Load(testutil.CertificatePEM(t, key, expired))
		assert.Nil(t, cert)
		assert.ErrorIs(t, err, envelopeDomain.ErrCertificateExpired)
		assert.ErrorIs(t, err, envelopeDomain.ErrCertificateLoad)
	})
}

func TestCertificateStore_LoadFrom(t *testing.T) {
	key := testutil.RSAKey(t)
	notAfter := time.Now().Add(48 * time.Hour)
	store := NewCertificateStore()

	t.Run("file", func(t *testing.T) {
		path := testutil.WriteFile(t, "cert.pem", testutil.CertificatePEM(t, key, notAfter))

		cert, err := store.LoadFrom(context.Background(), NewFileSource(path))
		require.NoError(t, err)
		assert.True(t, cert.Identifier.IsValid())
	})

	t.Run("missing file", func(t *testing.T) {
		cert, err := store.LoadFrom(context.Background(), NewFileSource("/does/not/exist.pem"))
		assert.Nil(t, cert)
		assert.ErrorIs(t, err, envelopeDomain.ErrCertificateLoad)
	})
}
