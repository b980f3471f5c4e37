package service

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"time"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
)

// CertificateStoreOption configures a CertificateStoreService.
type CertificateStoreOption func(*CertificateStoreService)

// WithLocation sets the calendar the certificate identifier is derived in.
func WithLocation(loc *time.Location) CertificateStoreOption {
	return func(s *CertificateStoreService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithClock overrides the clock used for the expiry check.
func WithClock(now func() time.Time) CertificateStoreOption {
	return func(s *CertificateStoreService) {
		if now != nil {
			s.now = now
		}
	}
}

// CertificateStoreService parses trust certificates. It holds no certificate
// itself; the caller keeps the returned TrustCertificate for reuse.
type CertificateStoreService struct {
	location *time.Location
	now      func() time.Time
}

// NewCertificateStore creates a certificate store that derives identifiers in UTC
// unless WithLocation says otherwise.
func NewCertificateStore(opts ...CertificateStoreOption) *CertificateStoreService {
	s := &CertificateStoreService{
		location: time.UTC,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load parses a PEM "CERTIFICATE" block or raw DER bytes into a TrustCertificate.
func (s *CertificateStoreService) Load(certificateBytes []byte) (*envelopeDomain.TrustCertificate, error) {
	if len(certificateBytes) == 0 {
		return nil, fmt.Errorf("%w: empty input", envelopeDomain.ErrCertificateMalformed)
	}

	der := certificateBytes
	if block, _ := pem.Decode(certificateBytes); block != nil {
		if block.Type != "CERTIFICATE" {
			return nil, fmt.Errorf(
				"%w: unexpected PEM block %q",
				envelopeDomain.ErrCertificateMalformed,
				block.Type,
			)
		}
		der = block.Bytes
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", envelopeDomain.ErrCertificateMalformed, err)
	}

	publicKey, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf(
			"%w: %s",
			envelopeDomain.ErrUnsupportedKeyAlgorithm,
			cert.PublicKeyAlgorithm,
		)
	}

	if bits := publicKey.N.BitLen(); bits < envelopeDomain.MinRSAKeyBits {
		return nil, fmt.Errorf(
			"%w: %d-bit modulus, need at least %d",
			envelopeDomain.ErrCertificateKeyTooSmall,
			bits,
			envelopeDomain.MinRSAKeyBits,
		)
	}

	now := s.now()
	if now.After(cert.NotAfter) {
		return nil, fmt.Errorf(
			"%w: not after %s",
			envelopeDomain.ErrCertificateExpired,
			cert.NotAfter.UTC().Format(time.RFC3339),
		)
	}

	return &envelopeDomain.TrustCertificate{
		Certificate: cert,
		PublicKey:   publicKey,
		NotAfter:    cert.NotAfter,
		Identifier:  envelopeDomain.NewCertificateIdentifier(cert.NotAfter, s.location),
	}, nil
}

// LoadFrom reads the certificate bytes from source and parses them.
func (s *CertificateStoreService) LoadFrom(
	ctx context.Context,
	source ByteSource,
) (*envelopeDomain.TrustCertificate, error) {
	b, err := source.ReadBytes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", envelopeDomain.ErrCertificateLoad, err)
	}
	return s.Load(b)
}
