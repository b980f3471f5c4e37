package usecase

import (
	"context"
	"crypto/rsa"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
	envelopeService "github.com/allisson/pidseal/internal/envelope/service"
)

// verifyUseCase implements VerifyUseCase.
type verifyUseCase struct {
	opener     envelopeService.EnvelopeOpener
	privateKey *rsa.PrivateKey
}

// Open returns ErrVerifierNotConfigured when no private key was loaded.
func (v *verifyUseCase) Open(
	ctx context.Context,
	input envelopeDomain.OpenInput,
) (*envelopeDomain.OpenedRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if v.privateKey == nil {
		return nil, envelopeDomain.ErrVerifierNotConfigured
	}
	return v.opener.Open(input.Envelope, input.Timestamp, v.privateKey)
}

// NewVerifyUseCase creates a new VerifyUseCase. privateKey may be nil, in which
// case every call fails with ErrVerifierNotConfigured.
func NewVerifyUseCase(opener envelopeService.EnvelopeOpener, privateKey *rsa.PrivateKey) VerifyUseCase {
	return &verifyUseCase{
		opener:     opener,
		privateKey: privateKey,
	}
}
