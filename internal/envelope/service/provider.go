package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rsa"
	"fmt"
	"io"
	"sync"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
)

// CipherProvider supplies the primitives behind the algorithm/mode/padding
// triples of the sealing protocol. Components depend only on this interface,
// never on a concrete provider.
type CipherProvider interface {
	// Name identifies the provider, used to make registration idempotent.
	Name() string

	// NewBlock returns an AES block cipher for a 16, 24 or 32 byte key.
	NewBlock(key []byte) (cipher.Block, error)

	// NewGCM wraps block in GCM with a 12-byte nonce and a 16-byte tag.
	NewGCM(block cipher.Block) (cipher.AEAD, error)

	// EncryptPKCS1v15 encrypts msg under pub with PKCS#1 v1.5 padding.
	EncryptPKCS1v15(random io.Reader, pub *rsa.PublicKey, msg []byte) ([]byte, error)

	// DecryptPKCS1v15 reverses EncryptPKCS1v15.
	DecryptPKCS1v15(priv *rsa.PrivateKey, ciphertext []byte) ([]byte, error)
}

// StandardProvider implements CipherProvider with the Go standard library.
type StandardProvider struct{}

// NewStandardProvider creates the standard library cipher provider.
func NewStandardProvider() *StandardProvider {
	return &StandardProvider{}
}

// Name returns "go-stdlib".
func (p *StandardProvider) Name() string {
	return "go-stdlib"
}

// NewBlock returns an AES block cipher.
func (p *StandardProvider) NewBlock(key []byte) (cipher.Block, error) {
	return aes.NewCipher(key)
}

// NewGCM returns GCM with the standard 12-byte nonce and 16-byte tag.
func (p *StandardProvider) NewGCM(block cipher.Block) (cipher.AEAD, error) {
	return cipher.NewGCM(block)
}

// EncryptPKCS1v15 encrypts msg with RSAES-PKCS1-v1_5.
func (p *StandardProvider) EncryptPKCS1v15(random io.Reader, pub *rsa.PublicKey, msg []byte) ([]byte, error) {
	return rsa.EncryptPKCS1v15(random, pub, msg)
}

// DecryptPKCS1v15 decrypts RSAES-PKCS1-v1_5 ciphertext.
func (p *StandardProvider) DecryptPKCS1v15(priv *rsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	return rsa.DecryptPKCS1v15(nil, priv, ciphertext)
}

var (
	providerMu     sync.RWMutex
	activeProvider CipherProvider
)

// InitProvider registers p as the process-wide cipher provider. It must run once
// at startup, before any pipeline call. Registering a provider with the same
// name again is a no-op; registering a different one fails with ErrProviderConflict.
func InitProvider(p CipherProvider) error {
	providerMu.Lock()
	defer providerMu.Unlock()

	if activeProvider == nil {
		activeProvider = p
		return nil
	}
	if activeProvider.Name() == p.Name() {
		return nil
	}
	return fmt.Errorf(
		"%w: %s is registered, refusing %s",
		envelopeDomain.ErrProviderConflict,
		activeProvider.Name(),
		p.Name(),
	)
}

// TeardownProvider unregisters the process-wide cipher provider. Safe to call
// more than once.
func TeardownProvider() {
	providerMu.Lock()
	defer providerMu.Unlock()
	activeProvider = nil
}

// CurrentProvider returns the registered cipher provider.
func CurrentProvider() (CipherProvider, error) {
	providerMu.RLock()
	defer providerMu.RUnlock()

	if activeProvider == nil {
		return nil, envelopeDomain.ErrProviderNotInitialized
	}
	return activeProvider, nil
}
