// Package config provides JWT configuration functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// defaultTokenLifetime applies when JWT_EXPIRATION_HOURS is unset.
const defaultTokenLifetime = 24 * time.Hour

// JWTConfig holds the signing secret and token lifetime for bearer-token
// protection of the tool API.
type JWTConfig struct {
	Secret   string
	Lifetime time.Duration
}

// NewJWTConfig builds the JWT configuration from JWT_SECRET (required)
// and JWT_EXPIRATION_HOURS (optional, whole hours, default 24).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	lifetime := defaultTokenLifetime
	if raw := os.Getenv("JWT_EXPIRATION_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
		}
		if hours < 1 {
			return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", hours)
		}
		lifetime = time.Duration(hours) * time.Hour
	}

	return &JWTConfig{Secret: secret, Lifetime: lifetime}, nil
}
