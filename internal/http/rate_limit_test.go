package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedRouter(ctx context.Context, rps float64, burst int) *gin.Engine {
	router := gin.New()
	router.Use(RateLimitMiddleware(ctx, rps, burst, discardLogger()))
	router.POST("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func sendFrom(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := newRateLimitedRouter(ctx, 10.0, 20)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, sendFrom(router, "192.0.2.1:1234").Code)
	}
}

func TestRateLimitMiddleware_BlocksRequestsExceedingLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := newRateLimitedRouter(ctx, 1.0, 2)

	// Send requests up to burst capacity (should succeed)
	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, sendFrom(router, "192.0.2.1:1234").Code)
	}

	w := sendFrom(router, "192.0.2.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
}

func TestRateLimitMiddleware_IndependentLimitsPerIP(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := newRateLimitedRouter(ctx, 0.001, 1)

	assert.Equal(t, http.StatusOK, sendFrom(router, "192.0.2.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, sendFrom(router, "192.0.2.1:1234").Code)
	assert.Equal(t, http.StatusOK, sendFrom(router, "192.0.2.2:1234").Code)
}

func TestRateLimiterStore_RemoveIdle(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store := newRateLimiterStore(1, 1)
	store.now = func() time.Time { return now }

	store.getLimiter("192.0.2.1")
	now = now.Add(2 * time.Hour)
	store.getLimiter("192.0.2.2")

	store.removeIdle(now.Add(-rateLimiterIdleTTL))

	_, stale := store.limiters.Load("192.0.2.1")
	_, fresh := store.limiters.Load("192.0.2.2")
	assert.False(t, stale)
	assert.True(t, fresh)
}

func TestRateLimiterStore_ReusesLimiter(t *testing.T) {
	store := newRateLimiterStore(1, 1)
	assert.Same(t, store.getLimiter("192.0.2.1"), store.getLimiter("192.0.2.1"))
}

func TestRateLimiterStore_CleanupStopsOnContextCancel(t *testing.T) {
	store := newRateLimiterStore(1, 1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		store.cleanupStale(ctx, time.Millisecond)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup goroutine did not stop")
	}
}
