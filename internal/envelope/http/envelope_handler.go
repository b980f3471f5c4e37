// Package http provides HTTP handlers for sealing and verifying PID envelopes.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
	"github.com/allisson/pidseal/internal/envelope/http/dto"
	envelopeUseCase "github.com/allisson/pidseal/internal/envelope/usecase"
	"github.com/allisson/pidseal/internal/httputil"
	customValidation "github.com/allisson/pidseal/internal/validation"
)

// EnvelopeHandler handles HTTP requests for envelope sealing and verification.
type EnvelopeHandler struct {
	sealUseCase   envelopeUseCase.SealUseCase
	verifyUseCase envelopeUseCase.VerifyUseCase
	logger        *slog.Logger
}

// NewEnvelopeHandler creates a new envelope handler with required dependencies.
func NewEnvelopeHandler(
	sealUseCase envelopeUseCase.SealUseCase,
	verifyUseCase envelopeUseCase.VerifyUseCase,
	logger *slog.Logger,
) *EnvelopeHandler {
	return &EnvelopeHandler{
		sealUseCase:   sealUseCase,
		verifyUseCase: verifyUseCase,
		logger:        logger,
	}
}

// SealHandler seals a base64-encoded PID payload.
// POST /v1/envelopes
// Returns 201 Created with the envelope, its XML fragment and the transaction id.
func (h *EnvelopeHandler) SealHandler(c *gin.Context) {
	var req dto.SealRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input, err := req.ToSealInput()
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	defer envelopeDomain.Zero(input.Payload)

	sealed, err := h.sealUseCase.Seal(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response, err := dto.MapSealedRequestToResponse(sealed)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("envelope sealed",
		slog.String("transaction_id", response.TransactionID),
		slog.String("ci", response.Envelope.Skey.CI.String()),
		slog.String("data_type", string(response.Envelope.Data.Type)),
		slog.Int("payload_size", len(input.Payload)),
	)

	c.JSON(http.StatusCreated, response)
}

// OpenHandler verifies an envelope with the configured verifier private key.
// POST /v1/envelopes/open
// Returns 200 OK with the cleartext payload, or 503 when no private key is configured.
// SECURITY: The payload is zeroed after the response is written.
func (h *EnvelopeHandler) OpenHandler(c *gin.Context) {
	var req dto.OpenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	opened, err := h.verifyUseCase.Open(c.Request.Context(), req.ToOpenInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer envelopeDomain.Zero(opened.Payload)

	c.JSON(http.StatusOK, dto.MapOpenedRequestToResponse(opened))
}
