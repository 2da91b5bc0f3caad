package server

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterRefills(t *testing.T) {
	rl := NewRateLimiter(3)
	defer rl.Stop()

	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		assert.True(t, rl.allowAt("10.0.0.1", start), "request %d", i)
	}
	assert.False(t, rl.allowAt("10.0.0.1", start))

	// Clients are independent.
	assert.True(t, rl.allowAt("10.0.0.2", start))

	// One token returns every 20 seconds.
	assert.True(t, rl.allowAt("10.0.0.1", start.Add(20*time.Second)))
	assert.False(t, rl.allowAt("10.0.0.1", start.Add(21*time.Second)))
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(0)
	defer rl.Stop()

	for i := 0; i < 100; i++ {
		assert.True(t, rl.Allow("10.0.0.1"))
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(5)
	defer rl.Stop()

	now := time.Now()
	rl.allowAt("stale", now.Add(-2*time.Hour))
	rl.allowAt("fresh", now)
	rl.cleanup(now)

	assert.Equal(t, 1, rl.clientCount())
}

func TestRateLimiterStopTwice(t *testing.T) {
	rl := NewRateLimiter(1)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	assert.Equal(t, "203.0.113.7", clientIP(req))

	req.RemoteAddr = "pipe"
	assert.Equal(t, "pipe", clientIP(req))
}
