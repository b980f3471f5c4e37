// Package testutil provides certificate and key fixtures for tests.
//
// RSA keys are expensive to generate, so one 2048-bit key is shared per test
// binary:
//
//	key := testutil.RSAKey(t)
//	der := testutil.CertificateDER(t, key, time.Now().Add(24*time.Hour))
//	pemBytes := testutil.CertificatePEM(t, key, notAfter)
package testutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	sharedKeyOnce sync.Once
	sharedKey     *rsa.PrivateKey
	sharedKeyErr  error
)

// RSAKey returns a shared 2048-bit RSA private key.
func RSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	sharedKeyOnce.Do(func() {
		sharedKey, sharedKeyErr = rsa.GenerateKey(rand.Reader, 2048)
	})
	require.NoError(t, sharedKeyErr)
	return sharedKey
}

// CertificateDER returns a self-signed DER certificate for key, valid until notAfter.
func CertificateDER(t *testing.T, key *rsa.PrivateKey, notAfter time.Time) []byte {
	t.Helper()
	return createCertificate(t, &key.PublicKey, key, notAfter)
}

// CertificatePEM returns the PEM encoding of CertificateDER.
func CertificatePEM(t *testing.T, key *rsa.PrivateKey, notAfter time.Time) []byte {
	t.Helper()
	der := CertificateDER(t, key, notAfter)
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
}

// IssuedCertificatePEM returns a certificate for pub signed by issuer. pub may
// be a key crypto/rsa refuses to generate, such as a sub-1024-bit modulus.
func IssuedCertificatePEM(t *testing.T, pub *rsa.PublicKey, issuer *rsa.PrivateKey, notAfter time.Time) []byte {
	t.Helper()
	der := createCertificate(t, pub, issuer, notAfter)
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
}

// WeakRSAPublicKey returns an RSA public key with a bits-long modulus. It only
// exercises size checks and cannot be used to decrypt anything.
func WeakRSAPublicKey(bits int) *rsa.PublicKey {
	n := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	n.Add(n, big.NewInt(1))
	return &rsa.PublicKey{N: n, E: 65537}
}

// ECDSACertificatePEM returns a self-signed P-256 certificate, for negative tests.
func ECDSACertificatePEM(t *testing.T, notAfter time.Time) []byte {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der := createCertificate(t, &key.PublicKey, key, notAfter)
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
}

// PKCS8PEM returns key as a PEM "PRIVATE KEY" block.
func PKCS8PEM(t *testing.T, key *rsa.PrivateKey) []byte {
	t.Helper()
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

// PKCS1PEM returns key as a PEM "RSA PRIVATE KEY" block.
func PKCS1PEM(key *rsa.PrivateKey) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
}

// WriteFile writes content into a file under t.TempDir and returns its path.
func WriteFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func createCertificate(t *testing.T, pub, priv any, notAfter time.Time) []byte {
	t.Helper()
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 62))
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: serial,
		Subject:      pkix.Name{CommonName: "pidseal test authority"},
		NotBefore:    notAfter.Add(-365 * 24 * time.Hour),
		NotAfter:     notAfter,
		KeyUsage:     x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, pub, priv)
	require.NoError(t, err)
	return der
}
