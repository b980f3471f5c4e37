package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/pidseal/internal/config"
)

// fakeServer blocks in Start until Shutdown is called or fails immediately.
type fakeServer struct {
	startErr error
	stopped  chan struct{}
	shutdown bool
}

func newFakeServer(startErr error) *fakeServer {
	return &fakeServer{startErr: startErr, stopped: make(chan struct{})}
}

func (f *fakeServer) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stopped
	return nil
}

func (f *fakeServer) Shutdown(ctx context.Context) error {
	if !f.shutdown {
		f.shutdown = true
		close(f.stopped)
	}
	return nil
}

func TestServe(t *testing.T) {
	cfg := &config.Config{ShutdownTimeout: time.Second}

	t.Run("graceful-shutdown-on-cancel", func(t *testing.T) {
		api := newFakeServer(nil)
		metrics := newFakeServer(nil)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- serve(ctx, map[string]Starter{"api server": api, "metrics server": metrics}, cfg, discardLogger())
		}()

		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("serve did not return after cancel")
		}
		assert.True(t, api.shutdown)
		assert.True(t, metrics.shutdown)
	})

	t.Run("one-server-fails", func(t *testing.T) {
		api := newFakeServer(nil)
		metrics := newFakeServer(errors.New("address already in use"))

		err := serve(
			context.Background(),
			map[string]Starter{"api server": api, "metrics server": metrics},
			cfg,
			discardLogger(),
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "metrics server error: address already in use")
		assert.True(t, api.shutdown)
	})
}
