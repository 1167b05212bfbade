package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/forum-api/internal/api/shared"
	"github.com/phrazzld/forum-api/internal/domain"
	"github.com/phrazzld/forum-api/internal/service/auth"
	"github.com/phrazzld/forum-api/internal/store"
)

// captureHandler records whether it ran and what principal it saw.
type captureHandler struct {
	called bool
	userID uuid.UUID
	authed bool
}

func (h *captureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.userID, h.authed = GetUserID(r)
	w.WriteHeader(http.StatusOK)
}

func newTestMiddleware(
	jwtService auth.JWTService,
	userStore store.UserStore,
) *AuthMiddleware {
	return NewAuthMiddleware(jwtService, userStore, nil)
}

func userStoreWith(user *domain.User) *store.MockUserStore {
	return &store.MockUserStore{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			if user != nil && id == user.ID {
				return user, nil
			}
			return nil, store.ErrUserNotFound
		},
	}
}

func TestAuthenticate_NoHeaderProceedsUnauthenticated(t *testing.T) {
	t.Parallel()

	next := &captureHandler{}
	m := newTestMiddleware(auth.NewMockJWTService(), userStoreWith(nil))

	req := httptest.NewRequest(http.MethodGet, "/topics", nil)
	rec := httptest.NewRecorder()
	m.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, next.called)
	assert.False(t, next.authed)
}

func TestAuthenticate_WrongSchemeRejected(t *testing.T) {
	t.Parallel()

	for _, header := range []string{
		"Basic dXNlcjpwYXNz",
		"Token abc123",
		"bearer lowercase-scheme",
		"Bearer", // no space, no token
	} {
		next := &captureHandler{}
		m := newTestMiddleware(auth.NewMockJWTService(), userStoreWith(nil))

		req := httptest.NewRequest(http.MethodGet, "/topics", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		m.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "header %q", header)
		assert.False(t, next.called, "header %q", header)
	}
}

func TestAuthenticate_InvalidTokenProceedsUnauthenticated(t *testing.T) {
	t.Parallel()

	for _, tokenErr := range []error{auth.ErrInvalidToken, auth.ErrExpiredToken} {
		next := &captureHandler{}
		jwtService := auth.NewMockJWTService()
		jwtService.ValidationError = tokenErr
		m := newTestMiddleware(jwtService, userStoreWith(nil))

		req := httptest.NewRequest(http.MethodGet, "/topics", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		m.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, next.called)
		assert.False(t, next.authed, "request with %v must not carry a principal", tokenErr)
	}
}

func TestAuthenticate_ValidTokenAttachesPrincipal(t *testing.T) {
	t.Parallel()

	user := &domain.User{ID: uuid.New(), Name: "Alice", Email: "alice@test.com"}
	jwtService := auth.NewMockJWTService()
	jwtService.Claims.UserID = user.ID
	jwtService.Claims.Subject = user.ID.String()

	next := &captureHandler{}
	m := newTestMiddleware(jwtService, userStoreWith(user))

	req := httptest.NewRequest(http.MethodGet, "/topics", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	m.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, next.called)
	assert.True(t, next.authed)
	assert.Equal(t, user.ID, next.userID)
}

func TestAuthenticate_DeletedSubjectProceedsUnauthenticated(t *testing.T) {
	t.Parallel()

	// Token verifies but its subject no longer exists in the store.
	jwtService := auth.NewMockJWTService()
	next := &captureHandler{}
	m := newTestMiddleware(jwtService, userStoreWith(nil))

	req := httptest.NewRequest(http.MethodGet, "/topics", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	m.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, next.called)
	assert.False(t, next.authed)
}

func TestAuthenticate_StoreFailureIsServerError(t *testing.T) {
	t.Parallel()

	jwtService := auth.NewMockJWTService()
	userStore := &store.MockUserStore{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return nil, context.DeadlineExceeded
		},
	}

	next := &captureHandler{}
	m := newTestMiddleware(jwtService, userStore)

	req := httptest.NewRequest(http.MethodGet, "/topics", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	m.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, next.called)
}

func TestRequireAuthenticated(t *testing.T) {
	t.Parallel()

	m := newTestMiddleware(auth.NewMockJWTService(), userStoreWith(nil))

	t.Run("rejects anonymous request", func(t *testing.T) {
		t.Parallel()
		next := &captureHandler{}
		req := httptest.NewRequest(http.MethodPost, "/topics", nil)
		rec := httptest.NewRecorder()
		m.RequireAuthenticated(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, next.called)
	})

	t.Run("passes authenticated request", func(t *testing.T) {
		t.Parallel()
		next := &captureHandler{}
		userID := uuid.New()
		req := httptest.NewRequest(http.MethodPost, "/topics", nil)
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
		rec := httptest.NewRecorder()
		m.RequireAuthenticated(next).ServeHTTP(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, next.called)
		assert.Equal(t, userID, next.userID)
	})
}
