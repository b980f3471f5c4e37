package domain

import (
	"fmt"
	"log/slog"
)

// SessionKeySize is the size in bytes of an AES-256 session key.
const SessionKeySize = 32

const redacted = "[REDACTED]"

// SessionKey is the per-transaction symmetric key shared by the payload cipher,
// the integrity tagger and the key encapsulator of a single envelope.
//
// It is never logged, serialized or reused: String, GoString and LogValue are
// redacted and MarshalJSON/MarshalText fail. Call Zero as soon as the three
// encryption steps have completed.
type SessionKey struct {
	key []byte
}

// NewSessionKey copies b into a new SessionKey. The caller keeps ownership of b
// and should zero it afterwards.
func NewSessionKey(b []byte) (*SessionKey, error) {
	if len(b) != SessionKeySize {
		return nil, fmt.Errorf(
			"%w: must be %d bytes, got %d",
			ErrInvalidSessionKey,
			SessionKeySize,
			len(b),
		)
	}

	key := make([]byte, SessionKeySize)
	copy(key, b)
	return &SessionKey{key: key}, nil
}

// Bytes returns the raw key material. The slice aliases the key, so it is
// cleared by Zero.
func (k *SessionKey) Bytes() []byte {
	if k == nil {
		return nil
	}
	return k.key
}

// Zero overwrites the key material. Safe to call more than once.
func (k *SessionKey) Zero() {
	if k == nil {
		return
	}
	Zero(k.key)
}

// String implements fmt.Stringer without exposing key material.
func (k *SessionKey) String() string {
	return redacted
}

// GoString implements fmt.GoStringer without exposing key material.
func (k *SessionKey) GoString() string {
	return redacted
}

// LogValue implements slog.LogValuer without exposing key material.
func (k *SessionKey) LogValue() slog.Value {
	return slog.StringValue(redacted)
}

// MarshalJSON always fails: session keys must not be persisted.
func (k *SessionKey) MarshalJSON() ([]byte, error) {
	return nil, ErrSessionKeyNotSerializable
}

// MarshalText always fails: session keys must not be persisted.
func (k *SessionKey) MarshalText() ([]byte, error) {
	return nil, ErrSessionKeyNotSerializable
}
