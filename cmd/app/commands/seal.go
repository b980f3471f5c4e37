package commands

import (
	"context"
	"fmt"
	"log/slog"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
	"github.com/allisson/pidseal/internal/envelope/http/dto"
	envelopeUseCase "github.com/allisson/pidseal/internal/envelope/usecase"
)

// RunSeal seals the PID payload read from payloadPath ("-" reads stdin) and
// writes the result as JSON (envelope plus metadata) or as the bare XML fragment.
// The payload buffer is zeroed before returning.
func RunSeal(
	ctx context.Context,
	sealUseCase envelopeUseCase.SealUseCase,
	logger *slog.Logger,
	streams IOTuple,
	payloadPath string,
	timestamp string,
	dataType string,
	format string,
) error {
	if format != "json" && format != "xml" {
		return fmt.Errorf("invalid format: %s (valid options: json, xml)", format)
	}

	parsedType, err := parseDataType(dataType)
	if err != nil {
		return err
	}

	payload, err := readInput(streams, payloadPath)
	if err != nil {
		return err
	}
	defer envelopeDomain.Zero(payload)

	sealed, err := sealUseCase.Seal(ctx, envelopeDomain.SealInput{
		Payload:   payload,
		Timestamp: envelopeDomain.Timestamp(timestamp),
		DataType:  parsedType,
	})
	if err != nil {
		return fmt.Errorf("failed to seal payload: %w", err)
	}

	logger.Info("envelope sealed",
		slog.String("transaction_id", sealed.TransactionID.String()),
		slog.String("ci", sealed.Envelope.Skey.CI.String()),
		slog.Int("payload_size", len(payload)),
	)

	response, err := dto.MapSealedRequestToResponse(sealed)
	if err != nil {
		return fmt.Errorf("failed to render envelope: %w", err)
	}

	if format == "xml" {
		_, _ = fmt.Fprintln(streams.Writer, response.XML)
		return nil
	}
	return outputJSON(streams.Writer, response)
}

// parseDataType converts a data type flag to envelopeDomain.DataType.
// An empty string keeps the configured default.
func parseDataType(dataType string) (envelopeDomain.DataType, error) {
	parsed := envelopeDomain.DataType(dataType)
	if parsed == "" || parsed.IsValid() {
		return parsed, nil
	}
	return "", fmt.Errorf("invalid data type: %s (valid options: X, P)", dataType)
}
