package service

import (
	"encoding/base64"
	"fmt"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
)

// EnvelopeAssemblerService base64-encodes the encrypted fields into an Envelope.
// It performs no cryptography and never fails on valid input.
type EnvelopeAssemblerService struct{}

// NewEnvelopeAssembler creates an envelope assembler.
func NewEnvelopeAssembler() *EnvelopeAssemblerService {
	return &EnvelopeAssemblerService{}
}

// Assemble builds the envelope. Empty inputs or an invalid identifier are
// programming errors and panic.
func (a *EnvelopeAssemblerService) Assemble(
	wrappedKey []byte,
	ci envelopeDomain.CertificateIdentifier,
	encryptedDigest []byte,
	ciphertext []byte,
	dataType envelopeDomain.DataType,
) envelopeDomain.Envelope {
	switch {
	case len(wrappedKey) == 0:
		panic("envelope assembler: empty wrapped key")
	case !ci.IsValid():
		panic(fmt.Sprintf("envelope assembler: invalid certificate identifier %q", ci))
	case len(encryptedDigest) == 0:
		panic("envelope assembler: empty encrypted digest")
	case len(ciphertext) == 0:
		panic("envelope assembler: empty ciphertext")
	case dataType == "":
		panic("envelope assembler: empty data type")
	}

	return envelopeDomain.Envelope{
		Skey: envelopeDomain.Skey{
			CI:    ci,
			Value: base64.StdEncoding.EncodeToString(wrappedKey),
		},
		Hmac: base64.StdEncoding.EncodeToString(encryptedDigest),
		Data: envelopeDomain.Data{
			Type:  dataType,
			Value: base64.StdEncoding.EncodeToString(ciphertext),
		},
	}
}
