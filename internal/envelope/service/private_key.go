package service

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"golang.org/x/crypto/pkcs12"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
)

// PrivateKeyLoader parses the verifier's RSA private key for the opening tooling.
type PrivateKeyLoader struct {
	password string
}

// NewPrivateKeyLoader creates a loader. password is only used for PKCS#12 input.
func NewPrivateKeyLoader(password string) *PrivateKeyLoader {
	return &PrivateKeyLoader{password: password}
}

// Parse accepts a PEM "RSA PRIVATE KEY" (PKCS#1) or "PRIVATE KEY" (PKCS#8)
// block, or a binary PKCS#12 bundle.
func (l *PrivateKeyLoader) Parse(keyBytes []byte) (*rsa.PrivateKey, error) {
	if len(keyBytes) == 0 {
		return nil, fmt.Errorf("%w: empty input", envelopeDomain.ErrPrivateKeyLoad)
	}

	block, _ := pem.Decode(keyBytes)
	if block == nil {
		return l.parsePKCS12(keyBytes)
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", envelopeDomain.ErrPrivateKeyLoad, err)
		}
		return key, nil
	case "PRIVATE KEY":
		parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", envelopeDomain.ErrPrivateKeyLoad, err)
		}
		key, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: not an RSA key (%T)", envelopeDomain.ErrPrivateKeyLoad, parsed)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("%w: unexpected PEM block %q", envelopeDomain.ErrPrivateKeyLoad, block.Type)
	}
}

// LoadFrom reads the key bytes from source and parses them.
func (l *PrivateKeyLoader) LoadFrom(ctx context.Context, source ByteSource) (*rsa.PrivateKey, error) {
	b, err := source.ReadBytes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", envelopeDomain.ErrPrivateKeyLoad, err)
	}
	defer envelopeDomain.Zero(b)

	return l.Parse(b)
}

func (l *PrivateKeyLoader) parsePKCS12(der []byte) (*rsa.PrivateKey, error) {
	parsed, _, err := pkcs12.Decode(der, l.password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", envelopeDomain.ErrPrivateKeyLoad, err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA key (%T)", envelopeDomain.ErrPrivateKeyLoad, parsed)
	}
	return key, nil
}
