// Package usecase orchestrates the envelope components into the seal and verify
// operations exposed by the HTTP API and the CLI.
package usecase

import (
	"context"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
)

// SealUseCase seals one PID payload per call.
type SealUseCase interface {
	// Seal encrypts the payload under a fresh session key and assembles the
	// envelope. Every call uses a new session key, including retries.
	Seal(ctx context.Context, input envelopeDomain.SealInput) (*envelopeDomain.SealedRequest, error)
}

// VerifyUseCase opens envelopes with the verifier private key. It backs the
// self-test tooling only.
type VerifyUseCase interface {
	// Open decrypts and checks an envelope.
	//
	// Security Note: The returned OpenedRequest contains cleartext PID data.
	// Callers MUST zero it after use by calling envelopeDomain.Zero(opened.Payload).
	Open(ctx context.Context, input envelopeDomain.OpenInput) (*envelopeDomain.OpenedRequest, error)
}
