package domain

import "fmt"

const (
	// IVSize is the GCM initialization vector size (96 bits).
	IVSize = 12
	// AADSize is the size of the additional authenticated data taken from the timestamp.
	AADSize = 16
)

// Timestamp is the caller-supplied transaction time (e.g. "2023-10-27T12:00:00").
//
// It travels next to the envelope as plaintext metadata and is also the
// deterministic source of the GCM IV and AAD, so a verifier can recompute both
// without extra fields. Because the IV does not depend on the key, every
// envelope must use a fresh SessionKey.
type Timestamp []byte

// IV returns a copy of the last 12 bytes of the timestamp.
func (t Timestamp) IV() ([]byte, error) {
	return t.tail(IVSize)
}

// AAD returns a copy of the last 16 bytes of the timestamp.
func (t Timestamp) AAD() ([]byte, error) {
	return t.tail(AADSize)
}

// Validate reports whether both the IV and the AAD can be derived. Timestamps
// shorter than AADSize are rejected rather than padded.
func (t Timestamp) Validate() error {
	if len(t) < AADSize {
		return fmt.Errorf("%w: got %d bytes", ErrTimestampTooShort, len(t))
	}
	return nil
}

// String returns the timestamp as text.
func (t Timestamp) String() string {
	return string(t)
}

func (t Timestamp) tail(n int) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, t[len(t)-n:])
	return out, nil
}
