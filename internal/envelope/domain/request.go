package domain

import (
	"time"

	"github.com/google/uuid"
)

// SealInput is the cleartext side of one transaction.
//
// Payload must be the exact canonical bytes produced by the upstream PID
// serializer: the same bytes are hashed and encrypted.
type SealInput struct {
	Payload   []byte
	Timestamp Timestamp
	DataType  DataType
}

// SealedRequest is an assembled envelope plus the plaintext metadata that
// travels with it.
type SealedRequest struct {
	TransactionID uuid.UUID // UUIDv7, for log correlation only
	Timestamp     Timestamp // Plaintext timestamp the IV/AAD were derived from
	Envelope      Envelope
	CreatedAt     time.Time
}

// OpenInput is an envelope to verify together with its timestamp.
type OpenInput struct {
	Envelope  Envelope
	Timestamp Timestamp
}

// OpenedRequest is the result of opening an envelope with the verifier key.
//
// Security Note: Payload is cleartext PID data. Callers MUST zero it after use.
type OpenedRequest struct {
	CI       CertificateIdentifier
	DataType DataType
	Payload  []byte
	Digest   []byte // SHA-256 recovered from hmac, already checked against Payload
}
