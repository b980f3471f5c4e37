package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
	envelopeService "github.com/allisson/pidseal/internal/envelope/service"
)

// sealUseCase implements SealUseCase.
type sealUseCase struct {
	certificate     *envelopeDomain.TrustCertificate
	keyGenerator    envelopeService.SessionKeyGenerator
	payloadCipher   envelopeService.PayloadCipher
	integrityTagger envelopeService.IntegrityTagger
	keyEncapsulator envelopeService.KeyEncapsulator
	assembler       envelopeService.EnvelopeAssembler
	defaultDataType envelopeDomain.DataType
}

// Seal runs the pipeline: generate key, encrypt payload, tag digest, wrap key,
// assemble. The session key is zeroed before returning on every path.
//
// The context is only checked before starting; once the key exists the call
// runs to completion or fails, and no partial envelope is returned.
func (s *sealUseCase) Seal(
	ctx context.Context,
	input envelopeDomain.SealInput,
) (*envelopeDomain.SealedRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := input.Timestamp.Validate(); err != nil {
		return nil, err
	}

	dataType := input.DataType
	if dataType == "" {
		dataType = s.defaultDataType
	}

	key, err := s.keyGenerator.Generate()
	if err != nil {
		return nil, err
	}
	defer key.Zero()

	ciphertext, err := s.payloadCipher.Encrypt(input.Payload, key, input.Timestamp)
	if err != nil {
		return nil, err
	}

	encryptedDigest, err := s.integrityTagger.Tag(input.Payload, key)
	if err != nil {
		return nil, err
	}

	wrappedKey, err := s.keyEncapsulator.Wrap(key, s.certificate.PublicKey)
	if err != nil {
		return nil, err
	}
	key.Zero()

	envelope := s.assembler.Assemble(
		wrappedKey,
		s.certificate.Identifier,
		encryptedDigest,
		ciphertext,
		dataType,
	)

	return &envelopeDomain.SealedRequest{
		TransactionID: uuid.Must(uuid.NewV7()),
		Timestamp:     input.Timestamp,
		Envelope:      envelope,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// NewSealUseCase creates a new SealUseCase bound to certificate. An empty
// defaultDataType falls back to DataTypeXML.
func NewSealUseCase(
	certificate *envelopeDomain.TrustCertificate,
	keyGenerator envelopeService.SessionKeyGenerator,
	payloadCipher envelopeService.PayloadCipher,
	integrityTagger envelopeService.IntegrityTagger,
	keyEncapsulator envelopeService.KeyEncapsulator,
	assembler envelopeService.EnvelopeAssembler,
	defaultDataType envelopeDomain.DataType,
) SealUseCase {
	if defaultDataType == "" {
		defaultDataType = envelopeDomain.DataTypeXML
	}
	return &sealUseCase{
		certificate:     certificate,
		keyGenerator:    keyGenerator,
		payloadCipher:   payloadCipher,
		integrityTagger: integrityTagger,
		keyEncapsulator: keyEncapsulator,
		assembler:       assembler,
		defaultDataType: defaultDataType,
	}
}
