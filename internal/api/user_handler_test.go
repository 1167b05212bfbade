package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/forum-api/internal/api"
	"github.com/phrazzld/forum-api/internal/domain"
	"github.com/phrazzld/forum-api/internal/service"
	"github.com/phrazzld/forum-api/internal/service/auth"
	"github.com/phrazzld/forum-api/internal/store"
)

// userFixtureStore holds users in memory so handler tests can observe
// whether a denied mutation left the stored state untouched.
type userFixtureStore struct {
	store.MockUserStore
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newUserFixtureStore(users ...*domain.User) *userFixtureStore {
	s := &userFixtureStore{users: make(map[uuid.UUID]*domain.User)}
	for _, user := range users {
		s.users[user.ID] = user
	}
	s.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if user, ok := s.users[id]; ok {
			copied := *user
			return &copied, nil
		}
		return nil, store.ErrUserNotFound
	}
	s.UpdateFunc = func(ctx context.Context, user *domain.User) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.users[user.ID]; !ok {
			return store.ErrUserNotFound
		}
		copied := *user
		s.users[user.ID] = &copied
		return nil
	}
	s.DeleteFunc = func(ctx context.Context, id uuid.UUID) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.users[id]; !ok {
			return store.ErrUserNotFound
		}
		delete(s.users, id)
		return nil
	}
	return s
}

func (s *userFixtureStore) get(id uuid.UUID) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

func accountFixture(email string) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:             uuid.New(),
		Name:           "Account Holder",
		Email:          email,
		HashedPassword: "$2a$04$notarealhashbutgoodenough1234567890abcdefgh",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func newUserRouter(t *testing.T, userStore store.UserStore) chi.Router {
	t.Helper()

	svc, err := service.NewUserService(
		userStore, auth.NewBcryptHasher(bcrypt.MinCost), nil)
	require.NoError(t, err)
	handler := api.NewUserHandler(svc, nil)

	r := chi.NewRouter()
	r.Put("/users/{id}", handler.UpdateUser)
	r.Delete("/users/{id}", handler.DeleteUser)
	return r
}

func TestUpdateUser_SelfMutates(t *testing.T) {
	t.Parallel()

	user := accountFixture("holder@example.com")
	userStore := newUserFixtureStore(user)
	router := newUserRouter(t, userStore)

	rec := doAuthedJSON(t, router, http.MethodPut, "/users/"+user.ID.String(), user.ID,
		api.UpdateUserRequest{Name: "Renamed Holder"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp api.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Renamed Holder", resp.Name)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Equal(t, "Renamed Holder", userStore.get(user.ID).Name)
}

func TestUpdateUser_NonSelfGets403AndNoMutation(t *testing.T) {
	t.Parallel()

	user := accountFixture("holder@example.com")
	userStore := newUserFixtureStore(user)
	router := newUserRouter(t, userStore)

	stranger := uuid.New()
	rec := doAuthedJSON(t, router, http.MethodPut, "/users/"+user.ID.String(), stranger,
		api.UpdateUserRequest{Name: "Hijacked"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), user.ID.String())
	assert.Equal(t, "Account Holder", userStore.get(user.ID).Name)
}

func TestUpdateUser_InvalidEmailRejected(t *testing.T) {
	t.Parallel()

	user := accountFixture("holder@example.com")
	userStore := newUserFixtureStore(user)
	router := newUserRouter(t, userStore)

	rec := doAuthedJSON(t, router, http.MethodPut, "/users/"+user.ID.String(), user.ID,
		api.UpdateUserRequest{Email: "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "holder@example.com", userStore.get(user.ID).Email)
}

func TestDeleteUser_SelfThenGone(t *testing.T) {
	t.Parallel()

	user := accountFixture("holder@example.com")
	userStore := newUserFixtureStore(user)
	router := newUserRouter(t, userStore)

	stranger := uuid.New()
	rec := doAuthedJSON(t, router, http.MethodDelete, "/users/"+user.ID.String(), stranger, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, userStore.get(user.ID))

	rec = doAuthedJSON(t, router, http.MethodDelete, "/users/"+user.ID.String(), user.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, userStore.get(user.ID))
}

func TestUpdateUser_Unauthenticated(t *testing.T) {
	t.Parallel()

	router := newUserRouter(t, newUserFixtureStore())

	rec := doAuthedJSON(t, router, http.MethodPut, "/users/"+uuid.NewString(), uuid.Nil,
		api.UpdateUserRequest{Name: "Nobody"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
