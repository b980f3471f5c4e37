package service

import (
	"crypto/rand"
	"fmt"
	"io"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
)

// SessionKeyGeneratorService draws session keys from a cryptographically secure
// random source. It keeps no state between calls and is safe for concurrent use
// as long as the reader is.
type SessionKeyGeneratorService struct {
	random io.Reader
}

// NewSessionKeyGenerator creates a generator reading from random. A nil reader
// means crypto/rand.Reader.
func NewSessionKeyGenerator(random io.Reader) *SessionKeyGeneratorService {
	if random == nil {
		random = rand.Reader
	}
	return &SessionKeyGeneratorService{random: random}
}

// Generate returns a fresh 32-byte session key.
func (g *SessionKeyGeneratorService) Generate() (*envelopeDomain.SessionKey, error) {
	buf := make([]byte, envelopeDomain.SessionKeySize)
	defer envelopeDomain.Zero(buf)

	if _, err := io.ReadFull(g.random, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", envelopeDomain.ErrKeyGeneration, err)
	}

	key, err := envelopeDomain.NewSessionKey(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", envelopeDomain.ErrKeyGeneration, err)
	}
	return key, nil
}
