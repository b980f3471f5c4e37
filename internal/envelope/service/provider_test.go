package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	envelopeDomain "github.com/allisson/pidseal/internal/envelope/domain"
)

type namedProvider struct {
	StandardProvider
	name string
}

func (p *namedProvider) Name() string {
	return p.name
}

func TestProviderLifecycle(t *testing.T) {
	TeardownProvider()
	t.Cleanup(TeardownProvider)

	t.Run("not initialized", func(t *testing.T) {
		provider, err := CurrentProvider()
		assert.Nil(t, provider)
		assert.ErrorIs(t, err, envelopeDomain.ErrProviderNotInitialized)
	})

	t.Run("init registers provider", func(t *testing.T) {
		std := NewStandardProvider()
		require.NoError(t, InitProvider(std))

		provider, err := CurrentProvider()
		require.NoError(t, err)
		assert.Same(t, std, provider)
	})

	t.Run("init with same name is a no-op", func(t *testing.T) {
		first, err := CurrentProvider()
		require.NoError(t, err)

		require.NoError(t, InitProvider(NewStandardProvider()))

		current, err := CurrentProvider()
		require.NoError(t, err)
		assert.Same(t, first, current)
	})

	t.Run("init with different provider conflicts", func(t *testing.T) {
		err := InitProvider(&namedProvider{name: "hsm"})
		assert.ErrorIs(t, err, envelopeDomain.ErrProviderConflict)
		assert.Contains(t, err.Error(), "hsm")
	})

	t.Run("teardown is idempotent", func(t *testing.T) {
		TeardownProvider()
		TeardownProvider()

		_, err := CurrentProvider()
		assert.ErrorIs(t, err, envelopeDomain.ErrProviderNotInitialized)

		require.NoError(t, InitProvider(&namedProvider{name: "hsm"}))
		provider, err := CurrentProvider()
		require.NoError(t, err)
		assert.Equal(t, "hsm", provider.Name())
	})
}

func TestStandardProvider(t *testing.T) {
	p := NewStandardProvider()
	assert.Equal(t, "go-stdlib", p.Name())

	t.Run("gcm sizes", func(t *testing.T) {
		block, err := p.NewBlock(make([]byte, 32))
		require.NoError(t, err)

		aead, err := p.NewGCM(block)
		require.NoError(t, err)
		assert.Equal(t, 12, aead.NonceSize())
		assert.Equal(t, 16, aead.Overhead())
	})

	t.Run("invalid key size", func(t *testing.T) {
		block, err := p.NewBlock(make([]byte, 7))
		assert.Error(t, err)
		assert.Nil(t, block)
	})
}
