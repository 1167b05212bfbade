package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the given user.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns the claims if the token is valid, or an error if
	// validation fails (expired, invalid signature, malformed, etc.).
	// It never returns a best-effort subject for a token that fails any
	// check.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// TokenLifetime reports the configured validity window for issued
	// tokens, so callers can compute the expiry of a freshly issued token
	// without re-parsing it.
	TokenLifetime() time.Duration
}

// Claims represents the verified content of a JWT token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	Issuer    string    `json:"iss,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
