package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/forum-api/internal/api"
	"github.com/phrazzld/forum-api/internal/domain"
	"github.com/phrazzld/forum-api/internal/service"
	"github.com/phrazzld/forum-api/internal/store"
)

func newReplyRouter(
	t *testing.T,
	replyStore store.ReplyStore,
	topicStore store.TopicStore,
) chi.Router {
	t.Helper()

	svc, err := service.NewReplyService(nil, replyStore, topicStore, nil)
	require.NoError(t, err)
	handler := api.NewReplyHandler(svc, nil)

	r := chi.NewRouter()
	r.Post("/topics/{id}/replies", handler.CreateReply)
	r.Get("/topics/{id}/replies", handler.ListReplies)
	r.Put("/replies/{id}", handler.UpdateReply)
	r.Delete("/replies/{id}", handler.DeleteReply)
	r.Post("/replies/{id}/solution", handler.MarkSolution)
	return r
}

func TestCreateReply_HTTP(t *testing.T) {
	t.Parallel()

	author := uuid.New()
	topic, err := domain.NewTopic(uuid.New(), uuid.New(), "Question", "Details")
	require.NoError(t, err)

	var created *domain.Reply
	replyStore := &store.MockReplyStore{
		CreateFunc: func(ctx context.Context, reply *domain.Reply) error {
			created = reply
			return nil
		},
	}
	router := newReplyRouter(t, replyStore, newTopicFixtureStore(topic))

	rec := doAuthedJSON(t, router, http.MethodPost, "/topics/"+topic.ID.String()+"/replies",
		author, api.CreateReplyRequest{Message: "An answer"})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, created)
	assert.Equal(t, author, created.AuthorID)

	var resp api.ReplyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, topic.ID, resp.TopicID)
	assert.False(t, resp.Solution)
}

func TestCreateReply_UnknownTopic(t *testing.T) {
	t.Parallel()

	router := newReplyRouter(t, &store.MockReplyStore{}, &store.MockTopicStore{})

	rec := doAuthedJSON(t, router, http.MethodPost,
		"/topics/"+uuid.New().String()+"/replies",
		uuid.New(), api.CreateReplyRequest{Message: "orphan"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateReply_NonOwnerGets403(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	reply, err := domain.NewReply(owner, uuid.New(), "Original")
	require.NoError(t, err)

	replyStore := &store.MockReplyStore{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Reply, error) {
			if id == reply.ID {
				copied := *reply
				return &copied, nil
			}
			return nil, store.ErrReplyNotFound
		},
	}
	router := newReplyRouter(t, replyStore, &store.MockTopicStore{})

	rec := doAuthedJSON(t, router, http.MethodPut, "/replies/"+reply.ID.String(),
		uuid.New(), api.UpdateReplyRequest{Message: "Hijacked"})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), owner.String())
}

func TestMarkSolution_NonTopicAuthorGets403(t *testing.T) {
	t.Parallel()

	topicAuthor := uuid.New()
	replyAuthor := uuid.New()
	topic, err := domain.NewTopic(topicAuthor, uuid.New(), "Question", "Details")
	require.NoError(t, err)
	reply, err := domain.NewReply(replyAuthor, topic.ID, "The answer")
	require.NoError(t, err)

	replyStore := &store.MockReplyStore{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Reply, error) {
			copied := *reply
			return &copied, nil
		},
	}
	router := newReplyRouter(t, replyStore, newTopicFixtureStore(topic))

	// The reply author cannot accept their own answer.
	rec := doAuthedJSON(t, router, http.MethodPost,
		"/replies/"+reply.ID.String()+"/solution", replyAuthor, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListReplies_Public(t *testing.T) {
	t.Parallel()

	topic, err := domain.NewTopic(uuid.New(), uuid.New(), "Question", "Details")
	require.NoError(t, err)
	first, err := domain.NewReply(uuid.New(), topic.ID, "First answer")
	require.NoError(t, err)
	second, err := domain.NewReply(uuid.New(), topic.ID, "Second answer")
	require.NoError(t, err)

	replyStore := &store.MockReplyStore{
		ListByTopicFunc: func(ctx context.Context, topicID uuid.UUID) ([]*domain.Reply, error) {
			return []*domain.Reply{first, second}, nil
		},
	}
	router := newReplyRouter(t, replyStore, newTopicFixtureStore(topic))

	rec := doAuthedJSON(t, router, http.MethodGet,
		"/topics/"+topic.ID.String()+"/replies", uuid.Nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []api.ReplyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}
