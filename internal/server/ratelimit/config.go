// Package ratelimit provides token bucket rate limiting for the tool API.
package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig holds the rate limit settings for one endpoint pattern.
type EndpointConfig struct {
	Pattern string
	Method  string
	Limit   int // requests per window, <= 0 means unlimited
	Window  time.Duration
	Burst   int
}

// Config holds the limiter configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	EndpointConfigs []EndpointConfig
}

// DefaultEndpointConfigs returns the per-endpoint limits for the tool API.
// Advisory generation calls out to an LLM, so it gets the tightest budget.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Pattern: "/health", Method: "GET", Limit: 0},
		{Pattern: "/tools/functional_preview", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		{Pattern: "/tools/assess_project", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},
		{Pattern: "/tools/export_report", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},
		{Pattern: "/tools/", Method: "", Limit: 60, Window: time.Minute, Burst: 20},
	}
}

// LoadConfig builds a limiter configuration from environment variables.
func LoadConfig() *Config {
	cfg := &Config{
		Enabled:         true,
		DefaultLimit:    120,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	}

	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = enabled
		}
	}
	if v := os.Getenv("RATE_LIMIT_DEFAULT"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			cfg.DefaultLimit = limit
		}
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW"); v != "" {
		if window, err := time.ParseDuration(v); err == nil && window > 0 {
			cfg.DefaultWindow = window
		}
	}

	return cfg
}

// MatchEndpoint finds the configuration for a request path and method.
// Exact patterns win over prefix patterns, and an empty Method matches any.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	var prefixMatch *EndpointConfig

	for i := range configs {
		ec := &configs[i]
		if ec.Method != "" && ec.Method != method {
			continue
		}
		if ec.Pattern == path {
			return ec
		}
		if strings.HasSuffix(ec.Pattern, "/") && strings.HasPrefix(path, ec.Pattern) {
			if prefixMatch == nil || len(ec.Pattern) > len(prefixMatch.Pattern) {
				prefixMatch = ec
			}
		}
	}

	return prefixMatch
}
