package testutil

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSAKey(t *testing.T) {
	key := RSAKey(t)
	assert.Equal(t, 2048, key.N.BitLen())
	assert.Same(t, key, RSAKey(t))
}

func TestCertificatePEM(t *testing.T) {
	notAfter := time.Date(2030, 3, 15, 12, 0, 0, 0, time.UTC)
	block, _ := pem.Decode(CertificatePEM(t, RSAKey(t), notAfter))
	require.NotNil(t, block)
	assert.Equal(t, "CERTIFICATE", block.Type)

	cert, err := x509.ParseCertificate(block.Bytes)
	require.NoError(t, err)
	assert.True(t, cert.NotAfter.Equal(notAfter))
	assert.Equal(t, x509.RSA, cert.PublicKeyAlgorithm)
}

func TestIssuedCertificatePEM(t *testing.T) {
	notAfter := time.Date(2030, 3, 15, 12, 0, 0, 0, time.UTC)
	block, _ := pem.Decode(IssuedCertificatePEM(t, WeakRSAPublicKey(768), RSAKey(t), notAfter))
	require.NotNil(t, block)

	cert, err := x509.ParseCertificate(block.Bytes)
	require.NoError(t, err)
	pub, ok := cert.PublicKey.(*rsa.PublicKey)
	require.True(t, ok)
	assert.Equal(t, 768, pub.N.BitLen())
}

func TestPKCS8PEM(t *testing.T) {
	block, _ := pem.Decode(PKCS8PEM(t, RSAKey(t)))
	require.NotNil(t, block)
	assert.Equal(t, "PRIVATE KEY", block.Type)
}

func TestWriteFile(t *testing.T) {
	path := WriteFile(t, "cert.pem", []byte("content"))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(b))
}
