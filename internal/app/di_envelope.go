package app

import (
	"context"
	"crypto/rsa"
	"fmt"
	"log/slog"
	"time"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
	envelopeHTTP "github.com/allisson/pidseal/internal/envelope/http"
	envelopeService "github.com/allisson/pidseal/internal/envelope/service"
	envelopeUseCase "github.com/allisson/pidseal/internal/envelope/usecase"
	apperrors "github.com/allisson/pidseal/internal/errors"
	"github.com/allisson/pidseal/internal/metrics"
)

// CipherProvider returns the process-wide cipher provider, registering the
// standard library provider on first access.
func (c *Container) CipherProvider() (envelopeService.CipherProvider, error) {
	var err error
	c.cipherProviderInit.Do(func() {
		c.cipherProvider, err = c.initCipherProvider()
		if err != nil {
			c.initErrors["cipherProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cipherProvider"]; exists {
		return nil, storedErr
	}
	return c.cipherProvider, nil
}

// KMSService returns the KMS service.
func (c *Container) KMSService() envelopeService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = envelopeService.NewKMSService()
	})
	return c.kmsService
}

// TrustCertificate returns the authority certificate loaded from CERTIFICATE_PATH.
func (c *Container) TrustCertificate() (*envelopeDomain.TrustCertificate, error) {
	var err error
	c.trustCertificateInit.Do(func() {
		c.trustCertificate, err = c.initTrustCertificate()
		if err != nil {
			c.initErrors["trustCertificate"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["trustCertificate"]; exists {
		return nil, storedErr
	}
	return c.trustCertificate, nil
}

// VerifierKey returns the private key used to open envelopes. It is nil when
// VERIFIER_KEY_PATH is not set.
func (c *Container) VerifierKey() (*rsa.PrivateKey, error) {
	var err error
	c.verifierKeyInit.Do(func() {
		c.verifierKey, err = c.initVerifierKey()
		if err != nil {
			c.initErrors["verifierKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["verifierKey"]; exists {
		return nil, storedErr
	}
	return c.verifierKey, nil
}

// SealUseCase returns the seal use case.
func (c *Container) SealUseCase() (envelopeUseCase.SealUseCase, error) {
	var err error
	c.sealUseCaseInit.Do(func() {
		c.sealUseCase, err = c.initSealUseCase()
		if err != nil {
			c.initErrors["sealUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sealUseCase"]; exists {
		return nil, storedErr
	}
	return c.sealUseCase, nil
}

// VerifyUseCase returns the verify use case.
func (c *Container) VerifyUseCase() (envelopeUseCase.VerifyUseCase, error) {
	var err error
	c.verifyUseCaseInit.Do(func() {
		c.verifyUseCase, err = c.initVerifyUseCase()
		if err != nil {
			c.initErrors["verifyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["verifyUseCase"]; exists {
		return nil, storedErr
	}
	return c.verifyUseCase, nil
}

// EnvelopeHandler returns the envelope HTTP handler.
func (c *Container) EnvelopeHandler() (*envelopeHTTP.EnvelopeHandler, error) {
	var err error
	c.envelopeHandlerInit.Do(func() {
		c.envelopeHandler, err = c.initEnvelopeHandler()
		if err != nil {
			c.initErrors["envelopeHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["envelopeHandler"]; exists {
		return nil, storedErr
	}
	return c.envelopeHandler, nil
}

// CertificateHandler returns the certificate HTTP handler.
func (c *Container) CertificateHandler() (*envelopeHTTP.CertificateHandler, error) {
	var err error
	c.certificateHandlerInit.Do(func() {
		c.certificateHandler, err = c.initCertificateHandler()
		if err != nil {
			c.initErrors["certificateHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["certificateHandler"]; exists {
		return nil, storedErr
	}
	return c.certificateHandler, nil
}

// initCipherProvider registers the standard library provider process-wide and
// returns whichever provider is active afterwards.
func (c *Container) initCipherProvider() (envelopeService.CipherProvider, error) {
	if err := envelopeService.InitProvider(envelopeService.NewStandardProvider()); err != nil {
		return nil, fmt.Errorf("failed to initialize cipher provider: %w", err)
	}
	provider, err := envelopeService.CurrentProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get cipher provider: %w", err)
	}
	c.Logger().Debug("cipher provider initialized", slog.String("provider", provider.Name()))
	return provider, nil
}

// source builds the byte source for path, unwrapping it with the KMS key at
// keyURI when one is configured. Opened keepers are closed on Shutdown.
func (c *Container) source(ctx context.Context, path, keyURI string) (envelopeService.ByteSource, error) {
	var source envelopeService.ByteSource = envelopeService.NewFileSource(path)
	if keyURI == "" {
		return source, nil
	}

	keeper, err := c.KMSService().OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.keepers = append(c.keepers, keeper)
	c.mu.Unlock()

	return envelopeService.NewKeeperSource(source, keeper), nil
}

// initTrustCertificate loads and validates the authority certificate and
// exports its remaining lifetime as a gauge when metrics are enabled.
func (c *Container) initTrustCertificate() (*envelopeDomain.TrustCertificate, error) {
	if c.config.CertificatePath == "" {
		return nil, apperrors.Wrapf(envelopeDomain.ErrCertificateLoad, "CERTIFICATE_PATH is required")
	}

	loc, err := c.config.Location()
	if err != nil {
		return nil, apperrors.Wrapf(envelopeDomain.ErrCertificateLoad, "%v", err)
	}

	source, err := c.source(c.ctx, c.config.CertificatePath, c.config.CertificateKMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open certificate source: %w", err)
	}

	certificate, err := envelopeService.NewCertificateStore(envelopeService.WithLocation(loc)).
		LoadFrom(c.ctx, source)
	if err != nil {
		return nil, err
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for certificate expiry: %w", err)
	}
	if provider != nil {
		if err := metrics.RegisterCertificateExpiry(
			provider.MeterProvider(),
			c.config.MetricsNamespace,
			certificate.Identifier.String(),
			certificate.NotAfter,
			time.Now,
		); err != nil {
			return nil, err
		}
	}

	c.Logger().Info("trust certificate loaded",
		slog.String("source", source.String()),
		slog.String("ci", certificate.Identifier.String()),
		slog.String("subject", certificate.Certificate.Subject.String()),
		slog.Time("not_after", certificate.NotAfter),
		slog.Int("key_bits", certificate.KeyBits()),
	)

	return certificate, nil
}

// initVerifierKey loads the optional verifier private key.
func (c *Container) initVerifierKey() (*rsa.PrivateKey, error) {
	if c.config.VerifierKeyPath == "" {
		return nil, nil
	}

	source, err := c.source(c.ctx, c.config.VerifierKeyPath, c.config.VerifierKeyKMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open verifier key source: %w", err)
	}

	key, err := envelopeService.NewPrivateKeyLoader(c.config.VerifierKeyPassword).LoadFrom(c.ctx, source)
	if err != nil {
		return nil, err
	}

	c.Logger().Info("verifier key loaded", slog.String("source", source.String()))
	return key, nil
}

// initSealUseCase wires the encryption pipeline around the trust certificate.
func (c *Container) initSealUseCase() (envelopeUseCase.SealUseCase, error) {
	certificate, err := c.TrustCertificate()
	if err != nil {
		return nil, fmt.Errorf("failed to get trust certificate for seal use case: %w", err)
	}

	defaultDataType := envelopeDomain.DataType(c.config.DefaultDataType)
	if !defaultDataType.IsValid() {
		return nil, apperrors.Wrapf(
			envelopeDomain.ErrInvalidDataType,
			"DEFAULT_DATA_TYPE must be %q or %q, got %q",
			envelopeDomain.DataTypeXML,
			envelopeDomain.DataTypeProtobuf,
			c.config.DefaultDataType,
		)
	}

	provider, err := c.CipherProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get cipher provider for seal use case: %w", err)
	}

	baseUseCase := envelopeUseCase.NewSealUseCase(
		certificate,
		envelopeService.NewSessionKeyGenerator(nil),
		envelopeService.NewPayloadCipher(provider),
		envelopeService.NewIntegrityTagger(provider),
		envelopeService.NewKeyEncapsulator(provider, nil),
		envelopeService.NewEnvelopeAssembler(),
		defaultDataType,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for seal use case: %w", err)
		}
		return envelopeUseCase.NewSealUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initVerifyUseCase wires the envelope opener around the optional verifier key.
func (c *Container) initVerifyUseCase() (envelopeUseCase.VerifyUseCase, error) {
	privateKey, err := c.VerifierKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get verifier key for verify use case: %w", err)
	}

	provider, err := c.CipherProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get cipher provider for verify use case: %w", err)
	}

	opener := envelopeService.NewEnvelopeOpener(
		envelopeService.NewKeyEncapsulator(provider, nil),
		envelopeService.NewPayloadCipher(provider),
		envelopeService.NewIntegrityTagger(provider),
	)
	baseUseCase := envelopeUseCase.NewVerifyUseCase(opener, privateKey)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for verify use case: %w", err)
		}
		return envelopeUseCase.NewVerifyUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initEnvelopeHandler creates the envelope HTTP handler with all its dependencies.
func (c *Container) initEnvelopeHandler() (*envelopeHTTP.EnvelopeHandler, error) {
	sealUseCase, err := c.SealUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get seal use case for envelope handler: %w", err)
	}

	verifyUseCase, err := c.VerifyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get verify use case for envelope handler: %w", err)
	}

	return envelopeHTTP.NewEnvelopeHandler(sealUseCase, verifyUseCase, c.Logger()), nil
}

// initCertificateHandler creates the certificate HTTP handler.
func (c *Container) initCertificateHandler() (*envelopeHTTP.CertificateHandler, error) {
	certificate, err := c.TrustCertificate()
	if err != nil {
		return nil, fmt.Errorf("failed to get trust certificate for certificate handler: %w", err)
	}
	return envelopeHTTP.NewCertificateHandler(certificate, nil, c.Logger()), nil
}
