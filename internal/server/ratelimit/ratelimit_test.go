package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		name    string
		path    string
		method  string
		want    string
		noMatch bool
	}{
		{name: "exact health match", path: "/health", method: "GET", want: "/health"},
		{name: "exact preview match", path: "/tools/functional_preview", method: "POST", want: "/tools/functional_preview"},
		{name: "prefix match for workflow tools", path: "/tools/create_workflow", method: "POST", want: "/tools/"},
		{name: "prefix match for status", path: "/tools/workflow_status/abc", method: "GET", want: "/tools/"},
		{name: "method mismatch falls to prefix", path: "/tools/assess_project", method: "GET", want: "/tools/"},
		{name: "unknown path", path: "/metrics", method: "GET", noMatch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.noMatch {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Pattern)
		})
	}
}

func TestLimiterAllowWithinBurst(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Pattern: "/tools/assess_project", Method: "POST", Limit: 60, Window: time.Minute, Burst: 3},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("10.0.0.1", "/tools/assess_project", "POST")
		assert.True(t, allowed, "request %d should be allowed", i)
		assert.Equal(t, 60, info.Limit)
	}

	allowed, info := limiter.Allow("10.0.0.1", "/tools/assess_project", "POST")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiterIsolatesClients(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Pattern: "/tools/assess_project", Method: "POST", Limit: 60, Window: time.Minute, Burst: 1},
		},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("10.0.0.1", "/tools/assess_project", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("10.0.0.1", "/tools/assess_project", "POST")
	require.False(t, allowed)

	// A different client has its own bucket.
	allowed, _ = limiter.Allow("10.0.0.2", "/tools/assess_project", "POST")
	assert.True(t, allowed)
}

func TestLimiterUnlimitedEndpoint(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiterDisabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/tools/assess_project", "POST")
		require.True(t, allowed)
	}
}
