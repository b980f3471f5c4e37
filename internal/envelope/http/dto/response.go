package dto

import (
	"encoding/base64"
	"time"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
)

// SealResponse contains a sealed envelope and its plaintext metadata.
type SealResponse struct {
	TransactionID string                  `json:"transaction_id"`
	Timestamp     string                  `json:"timestamp"`
	Envelope      envelopeDomain.Envelope `json:"envelope"`
	XML           string                  `json:"xml"` // <Skey/><Hmac/><Data/> fragment
	CreatedAt     time.Time               `json:"created_at"`
}

// MapSealedRequestToResponse converts a sealed request to an API response.
func MapSealedRequestToResponse(sealed *envelopeDomain.SealedRequest) (SealResponse, error) {
	fragment, err := sealed.Envelope.XMLFragment()
	if err != nil {
		return SealResponse{}, err
	}
	return SealResponse{
		TransactionID: sealed.TransactionID.String(),
		Timestamp:     sealed.Timestamp.String(),
		Envelope:      sealed.Envelope,
		XML:           fragment,
		CreatedAt:     sealed.CreatedAt,
	}, nil
}

// OpenResponse contains the verified payload of an opened envelope.
// SECURITY: Payload is cleartext PID data and should be transmitted over HTTPS.
type OpenResponse struct {
	CI       string `json:"ci"`
	DataType string `json:"data_type"`
	Payload  string `json:"payload"` // Base64-encoded
	Digest   string `json:"digest"`  // Base64-encoded SHA-256
}

// MapOpenedRequestToResponse converts an opened request to an API response.
func MapOpenedRequestToResponse(opened *envelopeDomain.OpenedRequest) OpenResponse {
	return OpenResponse{
		CI:       opened.CI.String(),
		DataType: string(opened.DataType),
		Payload:  base64.StdEncoding.EncodeToString(opened.Payload),
		Digest:   base64.StdEncoding.EncodeToString(opened.Digest),
	}
}

// CertificateResponse describes the loaded trust certificate.
type CertificateResponse struct {
	CI          string    `json:"ci"`
	Subject     string    `json:"subject"`
	Issuer      string    `json:"issuer"`
	NotAfter    time.Time `json:"not_after"`
	KeyBits     int       `json:"key_bits"`
	Fingerprint string    `json:"fingerprint_sha256"`
	Expired     bool      `json:"expired"`
}

// MapCertificateToResponse converts a trust certificate to an API response.
func MapCertificateToResponse(cert *envelopeDomain.TrustCertificate, now time.Time) CertificateResponse {
	return CertificateResponse{
		CI:          cert.Identifier.String(),
		Subject:     cert.Certificate.Subject.String(),
		Issuer:      cert.Certificate.Issuer.String(),
		NotAfter:    cert.NotAfter.UTC(),
		KeyBits:     cert.KeyBits(),
		Fingerprint: cert.Fingerprint(),
		Expired:     cert.ExpiredAt(now),
	}
}
