package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/forum-api/internal/api/shared"
	"github.com/phrazzld/forum-api/internal/domain"
	"github.com/phrazzld/forum-api/internal/platform/logger"
	"github.com/phrazzld/forum-api/internal/platform/metrics"
	"github.com/phrazzld/forum-api/internal/service/auth"
	"github.com/phrazzld/forum-api/internal/store"
)

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	userStore     store.UserStore
	authenticator *auth.Authenticator
	hasher        auth.PasswordHasher
	logger        *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	authenticator *auth.Authenticator,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		userStore:     userStore,
		authenticator: authenticator,
		hasher:        hasher,
		logger:        logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /auth/register. The plaintext password is hashed
// before the user ever reaches the store; it is never persisted or logged.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := domain.NewUser(req.Name, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	hashed, err := h.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Email already registered")
			return
		}
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
}

// Login handles POST /auth/login. Both unknown email and wrong password
// produce the same 401 response so the endpoint cannot be used to probe
// which emails are registered.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	details, err := h.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrAuthenticationFailed) {
			metrics.AuthFailuresTotal.WithLabelValues("login").Inc()
			shared.RespondWithErrorAndLog(
				w, r, http.StatusUnauthorized, "Invalid credentials", err,
				shared.WithElevatedLogLevel())
			return
		}
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to authenticate", err)
		return
	}

	log.Info("user logged in", slog.String("user_id", details.UserID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID:      details.UserID,
		TokenType:   details.TokenType,
		AccessToken: details.AccessToken,
		ExpiresAt:   details.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
