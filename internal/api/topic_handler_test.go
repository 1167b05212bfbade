package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/forum-api/internal/api"
	"github.com/phrazzld/forum-api/internal/api/shared"
	"github.com/phrazzld/forum-api/internal/domain"
	"github.com/phrazzld/forum-api/internal/service"
	"github.com/phrazzld/forum-api/internal/store"
)

// topicFixtureStore holds topics in memory so handler tests can observe
// whether a denied mutation left the stored state untouched.
type topicFixtureStore struct {
	store.MockTopicStore
	mu     sync.Mutex
	topics map[uuid.UUID]*domain.Topic
}

func newTopicFixtureStore(topics ...*domain.Topic) *topicFixtureStore {
	s := &topicFixtureStore{topics: make(map[uuid.UUID]*domain.Topic)}
	for _, topic := range topics {
		s.topics[topic.ID] = topic
	}
	s.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Topic, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if topic, ok := s.topics[id]; ok {
			copied := *topic
			return &copied, nil
		}
		return nil, store.ErrTopicNotFound
	}
	s.UpdateFunc = func(ctx context.Context, topic *domain.Topic) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.topics[topic.ID]; !ok {
			return store.ErrTopicNotFound
		}
		copied := *topic
		s.topics[topic.ID] = &copied
		return nil
	}
	s.DeleteFunc = func(ctx context.Context, id uuid.UUID) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.topics[id]; !ok {
			return store.ErrTopicNotFound
		}
		delete(s.topics, id)
		return nil
	}
	return s
}

func (s *topicFixtureStore) get(id uuid.UUID) *domain.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topics[id]
}

func newTopicRouter(t *testing.T, topicStore store.TopicStore) chi.Router {
	t.Helper()

	svc, err := service.NewTopicService(topicStore, &store.MockCourseStore{}, nil)
	require.NoError(t, err)
	handler := api.NewTopicHandler(svc, nil)

	r := chi.NewRouter()
	r.Get("/topics", handler.ListTopics)
	r.Get("/topics/{id}", handler.GetTopic)
	r.Put("/topics/{id}", handler.UpdateTopic)
	r.Delete("/topics/{id}", handler.DeleteTopic)
	return r
}

func doAuthedJSON(
	t *testing.T,
	router http.Handler,
	method, path string,
	userID uuid.UUID,
	body interface{},
) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if userID != uuid.Nil {
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUpdateTopic_OwnerMutates(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	topic, err := domain.NewTopic(owner, uuid.New(), "Original title", "Original message")
	require.NoError(t, err)

	fixture := newTopicFixtureStore(topic)
	router := newTopicRouter(t, fixture)

	rec := doAuthedJSON(t, router, http.MethodPut, "/topics/"+topic.ID.String(), owner,
		api.UpdateTopicRequest{Title: "Edited title"})

	require.Equal(t, http.StatusOK, rec.Code)
	stored := fixture.get(topic.ID)
	assert.Equal(t, "Edited title", stored.Title)
	assert.Equal(t, "Original message", stored.Message)
}

func TestUpdateTopic_NonOwnerGets403AndNoMutation(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	intruder := uuid.New()
	topic, err := domain.NewTopic(owner, uuid.New(), "Original title", "Original message")
	require.NoError(t, err)

	fixture := newTopicFixtureStore(topic)
	router := newTopicRouter(t, fixture)

	rec := doAuthedJSON(t, router, http.MethodPut, "/topics/"+topic.ID.String(), intruder,
		api.UpdateTopicRequest{Title: "Hijacked"})

	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The denial response reveals nothing about the actual owner.
	assert.NotContains(t, rec.Body.String(), owner.String())

	stored := fixture.get(topic.ID)
	assert.Equal(t, "Original title", stored.Title)
}

func TestDeleteTopic_NonOwnerGets403AndNoMutation(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	topic, err := domain.NewTopic(owner, uuid.New(), "Keep me", "Please")
	require.NoError(t, err)

	fixture := newTopicFixtureStore(topic)
	router := newTopicRouter(t, fixture)

	rec := doAuthedJSON(t, router, http.MethodDelete, "/topics/"+topic.ID.String(), uuid.New(), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotNil(t, fixture.get(topic.ID))

	rec = doAuthedJSON(t, router, http.MethodDelete, "/topics/"+topic.ID.String(), owner, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, fixture.get(topic.ID))
}

func TestGetTopic_PublicAndNotFound(t *testing.T) {
	t.Parallel()

	topic, err := domain.NewTopic(uuid.New(), uuid.New(), "A title", "A message")
	require.NoError(t, err)

	router := newTopicRouter(t, newTopicFixtureStore(topic))

	// No principal at all; reads are public.
	rec := doAuthedJSON(t, router, http.MethodGet, "/topics/"+topic.ID.String(), uuid.Nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doAuthedJSON(t, router, http.MethodGet, "/topics/"+uuid.New().String(), uuid.Nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doAuthedJSON(t, router, http.MethodGet, "/topics/not-a-uuid", uuid.Nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTopics_Pagination(t *testing.T) {
	t.Parallel()

	topicStore := &store.MockTopicStore{
		ListFunc: func(ctx context.Context, page store.Page) (*store.TopicPage, error) {
			assert.Equal(t, 2, page.Number)
			assert.Equal(t, 5, page.Size)
			return &store.TopicPage{Topics: nil, Total: 12}, nil
		},
	}
	router := newTopicRouter(t, topicStore)

	rec := doAuthedJSON(t, router, http.MethodGet, "/topics?page=2&page_size=5", uuid.Nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.TopicListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 5, resp.PageSize)
	assert.Equal(t, 12, resp.TotalItems)
	assert.Equal(t, 3, resp.TotalPages)
}
