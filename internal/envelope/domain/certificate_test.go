package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCertificateIdentifier(t *testing.T) {
	expiry := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("utc", func(t *testing.T) {
		ci := NewCertificateIdentifier(expiry, time.UTC)
		assert.Equal(t, CertificateIdentifier("20250315"), ci)
		assert.True(t, ci.IsValid())
	})

	t.Run("nil location defaults to utc", func(t *testing.T) {
		assert.Equal(t, CertificateIdentifier("20250315"), NewCertificateIdentifier(expiry, nil))
	})

	t.Run("location can move the calendar day", func(t *testing.T) {
		late := time.Date(2025, 3, 15, 20, 0, 0, 0, time.UTC)
		loc := time.FixedZone("IST", 5*3600+1800)
		assert.Equal(t, CertificateIdentifier("20250316"), NewCertificateIdentifier(late, loc))
	})
}

func TestCertificateIdentifier_IsValid(t *testing.T) {
	assert.True(t, CertificateIdentifier("20250315").IsValid())
	assert.False(t, CertificateIdentifier("2025031").IsValid())
	assert.False(t, CertificateIdentifier("2025-03-15").IsValid())
	assert.False(t, CertificateIdentifier("").IsValid())
}
