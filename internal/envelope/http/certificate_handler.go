package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
	"github.com/allisson/pidseal/internal/envelope/http/dto"
)

// CertificateHandler exposes the loaded trust certificate.
type CertificateHandler struct {
	certificate *envelopeDomain.TrustCertificate
	now         func() time.Time
	logger      *slog.Logger
}

// NewCertificateHandler creates a new certificate handler. A nil now means time.Now.
func NewCertificateHandler(
	certificate *envelopeDomain.TrustCertificate,
	now func() time.Time,
	logger *slog.Logger,
) *CertificateHandler {
	if now == nil {
		now = time.Now
	}
	return &CertificateHandler{
		certificate: certificate,
		now:         now,
		logger:      logger,
	}
}

// GetHandler describes the trust certificate used to wrap session keys.
// GET /v1/certificate
func (h *CertificateHandler) GetHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MapCertificateToResponse(h.certificate, h.now()))
}
