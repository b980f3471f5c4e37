package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics records envelope operation metrics.
type BusinessMetrics interface {
	// RecordOperation records an operation with its status.
	// Domain examples: "envelopes"
	// Operation examples: "envelope_seal", "envelope_open"
	// Status examples: "success", "error"
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records the duration of an operation with its status.
	// Duration is recorded in seconds as a histogram for percentile calculations.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordPayloadSize records the cleartext size in bytes of a sealed payload.
	RecordPayloadSize(ctx context.Context, dataType string, size int)
}

// businessMetrics implements BusinessMetrics using OpenTelemetry metrics.
type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	payloadSizeHisto metric.Int64Histogram
}

// NewBusinessMetrics creates a new BusinessMetrics implementation using the provided meter provider.
// The namespace parameter is used as a prefix for all metric names (e.g., "pidseal").
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of envelope operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of envelope operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	payloadSizeHisto, err := meter.Int64Histogram(
		fmt.Sprintf("%s_payload_size_bytes", namespace),
		metric.WithDescription("Cleartext size of sealed PID payloads"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(256, 1024, 4096, 16384, 65536, 262144, 1048576),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create payload size histogram: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		payloadSizeHisto: payloadSizeHisto,
	}, nil
}

// RecordOperation increments the operation counter with domain, operation, and status labels.
func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

// RecordDuration records the operation duration in seconds with domain, operation, and status labels.
func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

// RecordPayloadSize records size with a data_type label.
func (b *businessMetrics) RecordPayloadSize(ctx context.Context, dataType string, size int) {
	b.payloadSizeHisto.Record(ctx, int64(size),
		metric.WithAttributes(attribute.String("data_type", dataType)),
	)
}

// NoOpBusinessMetrics is a no-op implementation of BusinessMetrics for when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

// RecordOperation does nothing when metrics are disabled.
func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {}

// RecordDuration does nothing when metrics are disabled.
func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
}

// RecordPayloadSize does nothing when metrics are disabled.
func (n *NoOpBusinessMetrics) RecordPayloadSize(ctx context.Context, dataType string, size int) {}

// RegisterCertificateExpiry exports the seconds left until the trust
// certificate expires as an observable gauge labelled with its identifier.
// The value goes negative once the certificate has expired.
func RegisterCertificateExpiry(
	meterProvider metric.MeterProvider,
	namespace string,
	identifier string,
	notAfter time.Time,
	now func() time.Time,
) error {
	if now == nil {
		now = time.Now
	}
	meter := meterProvider.Meter(namespace)

	_, err := meter.Float64ObservableGauge(
		fmt.Sprintf("%s_certificate_expiry_seconds", namespace),
		metric.WithDescription("Seconds until the trust certificate expires"),
		metric.WithUnit("s"),
		metric.WithFloat64Callback(func(_ context.Context, o metric.Float64Observer) error {
			o.Observe(
				notAfter.Sub(now()).Seconds(),
				metric.WithAttributes(attribute.String("ci", identifier)),
			)
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create certificate expiry gauge: %w", err)
	}
	return nil
}
