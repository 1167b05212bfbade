package auth

import (
	"time"

	"github.com/phrazzld/forum-api/internal/config"
)

// DefaultJWTConfig returns a standard configuration for JWT authentication
// suitable for testing. This is the single source of truth for JWT test
// config.
func DefaultJWTConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 120,
		BcryptCost:           10, // Floor of the config's allowed range, keeps tests fast
	}
}

// NewTestJWTService creates a JWT service with the given secret, token
// lifetime and an injectable clock. Tests use the clock to simulate
// issuance and validation at different points in time.
func NewTestJWTService(
	secret string,
	lifetime time.Duration,
	timeFunc func() time.Time,
) JWTService {
	if timeFunc == nil {
		timeFunc = time.Now
	}
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
		clockSkew:     0, // Exact expiry semantics in tests
	}
}
