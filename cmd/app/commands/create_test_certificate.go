package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
	envelopeService "github.com/allisson/pidseal/internal/envelope/service"
)

// TestCertificateOptions configures RunCreateTestCertificate.
type TestCertificateOptions struct {
	CommonName   string
	Bits         int
	ValidityDays int
	CertOut      string
	KeyOut       string
	KMSKeyURI    string // optional; encrypts the private key file
}

// RunCreateTestCertificate generates a self-signed RSA certificate and its
// PKCS#8 private key for local development, then prints the environment
// variables that point the server at them.
//
// When KMSKeyURI is set the private key file holds the KMS ciphertext, which
// VERIFIER_KEY_KMS_KEY_URI unwraps at startup. For local development use
// base64key://<32-byte-base64-key>.
//
// Security: Never use these certificates against a real authentication service.
func RunCreateTestCertificate(
	ctx context.Context,
	kmsService envelopeService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	opts TestCertificateOptions,
) error {
	if opts.ValidityDays <= 0 {
		return fmt.Errorf("validity-days must be positive, got %d", opts.ValidityDays)
	}
	if opts.Bits < 2048 {
		return fmt.Errorf("bits must be at least 2048, got %d", opts.Bits)
	}

	generated, err := envelopeService.GenerateSelfSigned(
		opts.CommonName,
		opts.Bits,
		time.Duration(opts.ValidityDays)*24*time.Hour,
	)
	if err != nil {
		return fmt.Errorf("failed to generate certificate: %w", err)
	}
	defer envelopeDomain.Zero(generated.PrivateKeyPEM)

	// Round-trip the pair through the same loaders the server uses.
	certificate, err := envelopeService.NewCertificateStore().
		LoadFrom(ctx, envelopeService.ByteSliceSource(generated.CertificatePEM))
	if err != nil {
		return fmt.Errorf("generated certificate rejected: %w", err)
	}
	privateKey, err := envelopeService.NewPrivateKeyLoader("").
		LoadFrom(ctx, envelopeService.ByteSliceSource(generated.PrivateKeyPEM))
	if err != nil {
		return fmt.Errorf("generated private key rejected: %w", err)
	}
	if !privateKey.PublicKey.Equal(certificate.PublicKey) {
		return fmt.Errorf("generated private key does not match certificate")
	}

	keyBytes := generated.PrivateKeyPEM
	if opts.KMSKeyURI != "" {
		keeper, err := kmsService.OpenKeeper(ctx, opts.KMSKeyURI)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := keeper.Close(); closeErr != nil {
				logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
			}
		}()

		keyBytes, err = keeper.Encrypt(ctx, generated.PrivateKeyPEM)
		if err != nil {
			return fmt.Errorf("failed to encrypt private key with KMS: %w", err)
		}
	}

	if err := os.WriteFile(opts.CertOut, generated.CertificatePEM, 0o644); err != nil {
		return fmt.Errorf("failed to write certificate: %w", err)
	}
	if err := os.WriteFile(opts.KeyOut, keyBytes, 0o600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}

	logger.Info("test certificate created",
		slog.String("common_name", opts.CommonName),
		slog.Time("not_after", generated.NotAfter),
		slog.Bool("kms_wrapped", opts.KMSKeyURI != ""),
	)

	_, _ = fmt.Fprintln(writer, "# Test certificate created. Add these to your .env:")
	_, _ = fmt.Fprintf(writer, "CERTIFICATE_PATH=\"%s\"\n", opts.CertOut)
	_, _ = fmt.Fprintf(writer, "VERIFIER_KEY_PATH=\"%s\"\n", opts.KeyOut)
	if opts.KMSKeyURI != "" {
		_, _ = fmt.Fprintf(writer, "VERIFIER_KEY_KMS_KEY_URI=\"%s\"\n", opts.KMSKeyURI)
	}
	_, _ = fmt.Fprintf(writer, "# Certificate identifier (ci): %s\n", certificate.Identifier)
	return nil
}
