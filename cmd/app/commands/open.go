package commands

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
	"github.com/allisson/pidseal/internal/envelope/http/dto"
	envelopeUseCase "github.com/allisson/pidseal/internal/envelope/usecase"
)

// RunOpen verifies the envelope read from envelopePath ("-" reads stdin). The
// input is either a bare envelope or the JSON document written by the seal
// command. Text output prints the cleartext payload verbatim after a short header.
func RunOpen(
	ctx context.Context,
	verifyUseCase envelopeUseCase.VerifyUseCase,
	logger *slog.Logger,
	streams IOTuple,
	envelopePath string,
	timestamp string,
	format string,
) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}

	raw, err := readInput(streams, envelopePath)
	if err != nil {
		return err
	}

	envelope, err := parseEnvelope(raw)
	if err != nil {
		return err
	}

	opened, err := verifyUseCase.Open(ctx, envelopeDomain.OpenInput{
		Envelope:  envelope,
		Timestamp: envelopeDomain.Timestamp(timestamp),
	})
	if err != nil {
		return fmt.Errorf("failed to open envelope: %w", err)
	}
	defer envelopeDomain.Zero(opened.Payload)

	logger.Info("envelope verified",
		slog.String("ci", opened.CI.String()),
		slog.Int("payload_size", len(opened.Payload)),
	)

	if format == "json" {
		return outputJSON(streams.Writer, dto.MapOpenedRequestToResponse(opened))
	}

	_, _ = fmt.Fprintf(streams.Writer, "ci: %s\n", opened.CI)
	_, _ = fmt.Fprintf(streams.Writer, "data_type: %s\n", opened.DataType)
	_, _ = fmt.Fprintf(streams.Writer, "digest_sha256: %s\n", hex.EncodeToString(opened.Digest))
	_, _ = fmt.Fprintf(streams.Writer, "payload:\n%s\n", opened.Payload)
	return nil
}

// parseEnvelope accepts `{"envelope": {...}}` as written by seal, or a bare envelope.
func parseEnvelope(raw []byte) (envelopeDomain.Envelope, error) {
	var wrapped struct {
		Envelope *envelopeDomain.Envelope `json:"envelope"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return envelopeDomain.Envelope{}, fmt.Errorf("invalid envelope JSON: %w", err)
	}
	if wrapped.Envelope != nil {
		return *wrapped.Envelope, nil
	}

	var envelope envelopeDomain.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return envelopeDomain.Envelope{}, fmt.Errorf("invalid envelope JSON: %w", err)
	}
	return envelope, nil
}
