package usecase

import (
	"context"
	"time"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
	"github.com/allisson/pidseal/internal/metrics"
)

// sealUseCaseWithMetrics decorates SealUseCase with metrics instrumentation.
type sealUseCaseWithMetrics struct {
	next    SealUseCase
	metrics metrics.BusinessMetrics
}

// NewSealUseCaseWithMetrics wraps a SealUseCase with metrics recording.
func NewSealUseCaseWithMetrics(useCase SealUseCase, m metrics.BusinessMetrics) SealUseCase {
	return &sealUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Seal records metrics for envelope sealing operations.
func (s *sealUseCaseWithMetrics) Seal(
	ctx context.Context,
	input envelopeDomain.SealInput,
) (*envelopeDomain.SealedRequest, error) {
	start := time.Now()
	sealed, err := s.next.Seal(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	} else {
		s.metrics.RecordPayloadSize(ctx, string(sealed.Envelope.Data.Type), len(input.Payload))
	}

	s.metrics.RecordOperation(ctx, "envelopes", "envelope_seal", status)
	s.metrics.RecordDuration(ctx, "envelopes", "envelope_seal", time.Since(start), status)

	return sealed, err
}

// verifyUseCaseWithMetrics decorates VerifyUseCase with metrics instrumentation.
type verifyUseCaseWithMetrics struct {
	next    VerifyUseCase
	metrics metrics.BusinessMetrics
}

// NewVerifyUseCaseWithMetrics wraps a VerifyUseCase with metrics recording.
func NewVerifyUseCaseWithMetrics(useCase VerifyUseCase, m metrics.BusinessMetrics) VerifyUseCase {
	return &verifyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Open records metrics for envelope verification operations.
func (v *verifyUseCaseWithMetrics) Open(
	ctx context.Context,
	input envelopeDomain.OpenInput,
) (*envelopeDomain.OpenedRequest, error) {
	start := time.Now()
	opened, err := v.next.Open(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "envelopes", "envelope_open", status)
	v.metrics.RecordDuration(ctx, "envelopes", "envelope_open", time.Since(start), status)

	return opened, err
}
