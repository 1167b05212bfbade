package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/forum-api/internal/api/shared"
	"github.com/phrazzld/forum-api/internal/platform/metrics"
	"github.com/phrazzld/forum-api/internal/service/auth"
	"github.com/phrazzld/forum-api/internal/store"
)

// bearerPrefix is the only accepted Authorization scheme.
const bearerPrefix = "Bearer "

// AuthMiddleware resolves the requesting principal from a JWT carried in
// the Authorization header.
type AuthMiddleware struct {
	jwtService auth.JWTService
	userStore  store.UserStore
	logger     *slog.Logger
}

// NewAuthMiddleware creates an AuthMiddleware with the given dependencies.
func NewAuthMiddleware(
	jwtService auth.JWTService,
	userStore store.UserStore,
	logger *slog.Logger,
) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		jwtService: jwtService,
		userStore:  userStore,
		logger:     logger.With(slog.String("component", "auth_middleware")),
	}
}

// Authenticate inspects the Authorization header on every request:
//
//   - No header at all: the request proceeds unauthenticated. Route
//     guards decide whether that is acceptable.
//   - A header that does not use the Bearer scheme is rejected outright
//     with 400; the client constructed the request incorrectly.
//   - A Bearer token that fails verification, is expired, or names a
//     user that no longer exists downgrades the request to
//     unauthenticated rather than rejecting it.
//   - A verified token for an existing user attaches that user's ID to
//     the request context as the principal.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			metrics.AuthFailuresTotal.WithLabelValues("malformed_header").Inc()
			shared.RespondWithError(
				w, r, http.StatusBadRequest, "Authorization header must use the Bearer scheme")
			return
		}

		token := strings.TrimPrefix(authHeader, bearerPrefix)

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				metrics.AuthFailuresTotal.WithLabelValues("expired_token").Inc()
			default:
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
			}
			m.logger.Debug("token rejected, proceeding unauthenticated",
				slog.String("reason", err.Error()),
				slog.String("trace_id", shared.GetTraceID(r.Context())))
			next.ServeHTTP(w, r)
			return
		}

		// The token subject must still resolve to a stored user. An
		// account deleted after issuance yields a syntactically valid
		// token with no principal behind it.
		user, err := m.userStore.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				metrics.AuthFailuresTotal.WithLabelValues("unknown_subject").Inc()
				m.logger.Debug("token subject no longer exists, proceeding unauthenticated",
					slog.String("trace_id", shared.GetTraceID(r.Context())))
				next.ServeHTTP(w, r)
				return
			}
			m.logger.Error("failed to resolve token subject",
				slog.String("error", err.Error()),
				slog.String("trace_id", shared.GetTraceID(r.Context())))
			shared.RespondWithError(
				w, r, http.StatusInternalServerError, "Authentication error")
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuthenticated rejects requests that reach it without a resolved
// principal. Apply it to route groups that must not serve anonymous
// callers.
func (m *AuthMiddleware) RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserID(r); !ok {
			shared.RespondWithError(
				w, r, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID extracts the principal's user ID from the request context.
// The boolean reports whether the request is authenticated.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	return userID, ok
}
