package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/forum-api/internal/platform/logger"
	"github.com/phrazzld/forum-api/internal/store"
)

// TokenTypeBearer is the token-type label returned with every issued token
// and expected as the Authorization header scheme.
const TokenTypeBearer = "Bearer"

// TokenDetails is the result of a successful login exchange.
type TokenDetails struct {
	UserID      uuid.UUID
	TokenType   string
	AccessToken string
	ExpiresAt   time.Time
}

// Authenticator performs the login exchange: it validates credentials
// against the user store and issues a token on success. It is the only
// token-minting path in the application.
type Authenticator struct {
	userStore  store.UserStore
	hasher     PasswordHasher
	jwtService JWTService
}

// NewAuthenticator creates a new Authenticator with the given dependencies.
func NewAuthenticator(
	userStore store.UserStore,
	hasher PasswordHasher,
	jwtService JWTService,
) *Authenticator {
	return &Authenticator{
		userStore:  userStore,
		hasher:     hasher,
		jwtService: jwtService,
	}
}

// Authenticate validates the email/password pair and returns a freshly
// issued bearer token. Unknown email and wrong password both return
// ErrAuthenticationFailed so callers cannot distinguish the two cases.
// Unexpected store failures are returned as-is so they surface as server
// errors rather than authentication decisions.
func (a *Authenticator) Authenticate(
	ctx context.Context,
	email, password string,
) (*TokenDetails, error) {
	log := logger.FromContext(ctx)

	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login failed: unknown email")
			return nil, ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := a.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login failed: password mismatch", "user_id", user.ID)
		return nil, ErrAuthenticationFailed
	}

	token, err := a.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &TokenDetails{
		UserID:      user.ID,
		TokenType:   TokenTypeBearer,
		AccessToken: token,
		ExpiresAt:   time.Now().Add(a.jwtService.TokenLifetime()).UTC(),
	}, nil
}
