// Package http provides the HTTP server that exposes envelope sealing and verification.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/pidseal/internal/config"
	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
	envelopeHTTP "github.com/allisson/pidseal/internal/envelope/http"
	"github.com/allisson/pidseal/internal/metrics"
)

// Server represents the HTTP server
type Server struct {
	server      *http.Server
	router      *gin.Engine
	logger      *slog.Logger
	certificate *envelopeDomain.TrustCertificate
	now         func() time.Time
}

// NewServer creates a new HTTP server. The certificate drives the readiness probe.
func NewServer(
	certificate *envelopeDomain.TrustCertificate,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		logger:      logger,
		certificate: certificate,
		now:         time.Now,
		server:      newHTTPServer(host, port, nil),
	}
}

// newHTTPServer applies the timeouts shared by the API and metrics servers.
func newHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}

// SetupRouter builds the Gin router with all routes and middleware.
// The rate limiter cleanup goroutine stops when ctx is done.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	envelopeHandler *envelopeHTTP.EnvelopeHandler,
	certificateHandler *envelopeHTTP.CertificateHandler,
	metricsProvider *metrics.Provider,
	metricsNamespace string,
) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	{
		envelopes := v1.Group("/envelopes")
		{
			sealHandlers := []gin.HandlerFunc{}
			if cfg.RateLimitEnabled {
				sealHandlers = append(sealHandlers, RateLimitMiddleware(
					ctx,
					cfg.RateLimitRequestsPerSec,
					cfg.RateLimitBurst,
					s.logger,
				))
			}
			sealHandlers = append(sealHandlers, envelopeHandler.SealHandler)

			envelopes.POST("", sealHandlers...)
			envelopes.POST("/open", envelopeHandler.OpenHandler)
		}

		v1.GET("/certificate", certificateHandler.GetHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not initialized, call SetupRouter first")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether envelopes can be sealed: a trust certificate is
// loaded and has not expired since startup.
func (s *Server) readinessHandler(c *gin.Context) {
	status := "ok"
	switch {
	case s.certificate == nil:
		status = "missing"
	case s.certificate.ExpiredAt(s.now()):
		status = "expired"
	}

	components := gin.H{"certificate": status}
	if status != "ok" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}
