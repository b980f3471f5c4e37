package domain

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"regexp"
	"time"
)

// CertificateIdentifierLayout is the time layout of a certificate identifier (YYYYMMDD).
const CertificateIdentifierLayout = "20060102"

// MinRSAKeyBits is the smallest RSA modulus crypto/rsa accepts for encryption.
const MinRSAKeyBits = 1024

var certificateIdentifierPattern = regexp.MustCompile(`^[0-9]{8}$`)

// CertificateIdentifier tells the verifier which certificate, and therefore which
// private key, decrypts the session key. It is the certificate expiry date
// formatted as YYYYMMDD in the authority's calendar. Not secret.
type CertificateIdentifier string

// NewCertificateIdentifier formats expiry in loc. A nil loc means UTC.
func NewCertificateIdentifier(expiry time.Time, loc *time.Location) CertificateIdentifier {
	if loc == nil {
		loc = time.UTC
	}
	return CertificateIdentifier(expiry.In(loc).Format(CertificateIdentifierLayout))
}

// IsValid reports whether the identifier matches ^[0-9]{8}$.
func (c CertificateIdentifier) IsValid() bool {
	return certificateIdentifierPattern.MatchString(string(c))
}

// String returns the identifier as text.
func (c CertificateIdentifier) String() string {
	return string(c)
}

// TrustCertificate is the verifying authority's encryption certificate.
// It is loaded once at startup and shared read-only by every transaction.
type TrustCertificate struct {
	Certificate *x509.Certificate     // Parsed certificate
	PublicKey   *rsa.PublicKey        // Key used to wrap session keys
	NotAfter    time.Time             // Expiry instant
	Identifier  CertificateIdentifier // Derived from NotAfter, cached
}

// Fingerprint returns the hex-encoded SHA-256 of the DER certificate.
func (t *TrustCertificate) Fingerprint() string {
	sum := sha256.Sum256(t.Certificate.Raw)
	return hex.EncodeToString(sum[:])
}

// KeyBits returns the RSA modulus size in bits.
func (t *TrustCertificate) KeyBits() int {
	return t.PublicKey.N.BitLen()
}

// ExpiredAt reports whether the certificate is expired at now.
func (t *TrustCertificate) ExpiredAt(now time.Time) bool {
	return now.After(t.NotAfter)
}
