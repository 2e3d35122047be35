package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginLimiterAllowsBurstThenDenies(t *testing.T) {
	l := NewLoginLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "Attempt %d within capacity", i+1)
	}
	assert.False(t, l.Allow("10.0.0.1"), "Capacity exhausted")
	assert.True(t, l.Allow("10.0.0.2"), "Buckets are per IP")
}

func TestLoginLimiterRefills(t *testing.T) {
	l := NewLoginLimiter(1, 10*time.Millisecond)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	time.Sleep(25 * time.Millisecond)
	assert.True(t, l.Allow("10.0.0.1"), "Tokens refill over time")
}

func TestLimitLoginRespondsTooManyRequests(t *testing.T) {
	l := NewLoginLimiter(1, time.Hour)
	called := 0
	handler := LimitLogin(l, func(w http.ResponseWriter, r *http.Request) {
		called++
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:54321"

	w := httptest.NewRecorder()
	handler(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, 1, called, "The limited request never reaches the handler")
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:1234"
	assert.Equal(t, "192.0.2.7", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 192.0.2.7")
	assert.Equal(t, "203.0.113.5", ClientIP(req), "The first forwarded hop is the caller")

	req.Header.Set("X-Forwarded-For", " 203.0.113.9 ")
	assert.Equal(t, "203.0.113.9", ClientIP(req))
}
