package ratelimit

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterFixedWindow(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(WithClock(func() time.Time { return now }))
	limiter := NewLimiter(store, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		result, err := limiter.Check(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	}

	result, err := limiter.Check(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Zero(t, result.Remaining)
	assert.Equal(t, time.Minute, result.RetryAfter)

	// Other keys are unaffected.
	result, err = limiter.Check(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	// The window resets after it elapses.
	now = now.Add(61 * time.Second)
	result, err = limiter.Check(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 1, result.Remaining)
}

func TestMiddlewareRejectsOverLimit(t *testing.T) {
	store := NewMemoryStore()
	limiter := NewLimiter(store, 1, time.Minute)
	mw := NewMiddleware(limiter, slog.New(slog.DiscardHandler))

	handler := mw.Limit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/midds/track/validate", nil)
	req.RemoteAddr = "9.9.9.9:1234"

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.JSONEq(t,
		`{"error":"rate_limit_exceeded","error_description":"too many requests, retry later"}`,
		second.Body.String())
}

func TestMiddlewareDisabled(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), 0, time.Minute)
	mw := NewMiddleware(limiter, slog.New(slog.DiscardHandler), WithDisabled(true))

	handler := mw.Limit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
