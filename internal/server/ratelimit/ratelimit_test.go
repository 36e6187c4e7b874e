package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  600,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{},
		EndpointConfigs: []EndpointConfig{
			{Path: "/api/search", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
			{Path: "/health", Method: "GET", Limit: 0, Window: time.Minute},
		},
	}
}

func TestAllow_BurstExhaustion(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/api/search", "POST")
		assert.True(t, allowed, "request %d within burst", i+1)
	}

	allowed, info := l.Allow("1.2.3.4", "/api/search", "POST")
	require.False(t, allowed)
	assert.Equal(t, 10, info.Limit)
	assert.Zero(t, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestAllow_ClientsIsolated(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		l.Allow("1.2.3.4", "/api/search", "POST")
	}

	allowed, _ := l.Allow("5.6.7.8", "/api/search", "POST")
	assert.True(t, allowed, "a different client has its own bucket")
}

func TestAllow_UnlimitedEndpoint(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestAllow_Whitelist(t *testing.T) {
	cfg := testConfig()
	cfg.Whitelist["10.0.0.1"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/api/search", "POST")
		require.True(t, allowed)
	}
}

func TestAllow_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/api/search", "POST")
		require.True(t, allowed)
	}
}

func TestAllow_UnmatchedRouteUsesDefault(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLimit = 2
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/api/corpus", "GET")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("1.2.3.4", "/api/corpus", "GET")
	assert.False(t, allowed)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/api", Method: "POST", Limit: 100},
		{Path: "/api/linkedin", Method: "POST", Limit: 50},
		{Path: "/api/linkedin/batch", Method: "POST", Limit: 10},
	}

	ec := matchEndpoint("/api/linkedin/batch", "POST", configs)
	require.NotNil(t, ec)
	assert.Equal(t, 10, ec.Limit, "longest prefix wins")

	ec = matchEndpoint("/api/linkedin/search", "POST", configs)
	require.NotNil(t, ec)
	assert.Equal(t, 50, ec.Limit)

	assert.Nil(t, matchEndpoint("/api/linkedin/batch", "GET", configs), "method must match")
	assert.Nil(t, matchEndpoint("/health", "POST", configs))
}

func TestTokenBucket_Refill(t *testing.T) {
	tb := newTokenBucket(1, 1000) // refills fast enough to observe in a test
	require.True(t, tb.allow())
	assert.False(t, tb.allow())

	time.Sleep(5 * time.Millisecond)
	assert.True(t, tb.allow())
}
