package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kinetica/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2, time.Minute)
	t.Cleanup(limiter.Stop)
	router := newTestRouter(RateLimitMiddleware(limiter))

	before := testutil.ToFloat64(metrics.RateLimitedTotal)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many requests"}`, w.Body.String())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RateLimitedTotal))
}

func TestRateLimiter_PerIP(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1, time.Minute)
	t.Cleanup(limiter.Stop)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"))
}

func TestRateLimiter_Evict(t *testing.T) {
	limiter := NewRateLimiter(1, 1, time.Minute)
	t.Cleanup(limiter.Stop)

	limiter.Allow("10.0.0.1")
	limiter.Allow("10.0.0.2")

	limiter.evict(time.Now())
	assert.Equal(t, 2, limiter.size())

	limiter.evict(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 0, limiter.size())
}

func TestRateLimiter_StopTwice(t *testing.T) {
	limiter := NewRateLimiter(1, 1, time.Minute)
	limiter.Stop()
	assert.NotPanics(t, limiter.Stop)
}
