// Package config provides application configuration through environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ShutdownTimeout bounds graceful shutdown of the API and metrics servers.
	ShutdownTimeout time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// CertificatePath is the PEM or DER file holding the authority's trust certificate.
	CertificatePath string
	// CertificateTimezone is the IANA location used to derive the certificate identifier.
	CertificateTimezone string
	// CertificateKMSKeyURI, when set, means the certificate file is encrypted with this KMS key.
	CertificateKMSKeyURI string

	// DefaultDataType is the Data type attribute used when a request omits it ("X" or "P").
	DefaultDataType string

	// VerifierKeyPath is the optional private key used to open envelopes (PEM or PKCS#12).
	VerifierKeyPath string
	// VerifierKeyPassword decrypts a PKCS#12 verifier key.
	VerifierKeyPassword string
	// VerifierKeyKMSKeyURI, when set, means the verifier key file is encrypted with this KMS key.
	VerifierKeyKMSKeyURI string

	// RateLimitEnabled indicates whether per-IP rate limiting of the seal endpoint is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of seal requests allowed per second per client IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for seal rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost:      env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:      env.GetInt("SERVER_PORT", 8080),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Trust certificate
		CertificatePath:      env.GetString("CERTIFICATE_PATH", ""),
		CertificateTimezone:  env.GetString("CERTIFICATE_TIMEZONE", "UTC"),
		CertificateKMSKeyURI: env.GetString("CERTIFICATE_KMS_KEY_URI", ""),

		// Envelope defaults
		DefaultDataType: env.GetString("DEFAULT_DATA_TYPE", "X"),

		// Verifier key
		VerifierKeyPath:      env.GetString("VERIFIER_KEY_PATH", ""),
		VerifierKeyPassword:  env.GetString("VERIFIER_KEY_PASSWORD", ""),
		VerifierKeyKMSKeyURI: env.GetString("VERIFIER_KEY_KMS_KEY_URI", ""),

		// Rate Limiting (seal endpoint, per client IP)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 50.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 100),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "pidseal"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// Location resolves CertificateTimezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.CertificateTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid CERTIFICATE_TIMEZONE %q: %w", c.CertificateTimezone, err)
	}
	return loc, nil
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	case "info", "warn", "error":
		return "release"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
