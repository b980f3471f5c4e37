package commands

import (
	"fmt"
	"io"
	"time"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
	"github.com/allisson/pidseal/internal/envelope/http/dto"
)

// RunCertificateInfo prints the trust certificate summary, including the
// identifier that goes into the Skey ci attribute.
func RunCertificateInfo(
	certificate *envelopeDomain.TrustCertificate,
	now time.Time,
	writer io.Writer,
	format string,
) error {
	info := dto.MapCertificateToResponse(certificate, now)

	switch format {
	case "json":
		return outputJSON(writer, info)
	case "text":
		_, _ = fmt.Fprintf(writer, "ci: %s\n", info.CI)
		_, _ = fmt.Fprintf(writer, "subject: %s\n", info.Subject)
		_, _ = fmt.Fprintf(writer, "issuer: %s\n", info.Issuer)
		_, _ = fmt.Fprintf(writer, "not_after: %s\n", info.NotAfter.Format(time.RFC3339))
		_, _ = fmt.Fprintf(writer, "key_bits: %d\n", info.KeyBits)
		_, _ = fmt.Fprintf(writer, "fingerprint_sha256: %s\n", info.Fingerprint)
		_, _ = fmt.Fprintf(writer, "expired: %t\n", info.Expired)
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
}
