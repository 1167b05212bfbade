package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/forum-api/internal/domain"
	"github.com/phrazzld/forum-api/internal/service"
	"github.com/phrazzld/forum-api/internal/service/authz"
	"github.com/phrazzld/forum-api/internal/store"
)

func newReplyFixture(authorID, topicID uuid.UUID) *domain.Reply {
	return &domain.Reply{
		ID:       uuid.New(),
		Message:  "Try raising max_connections.",
		TopicID:  topicID,
		AuthorID: authorID,
	}
}

func replyStoreReturning(reply *domain.Reply) *store.MockReplyStore {
	return &store.MockReplyStore{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Reply, error) {
			if reply != nil && id == reply.ID {
				return reply, nil
			}
			return nil, store.ErrReplyNotFound
		},
	}
}

func TestCreateReply(t *testing.T) {
	t.Parallel()

	authorID := uuid.New()
	topic := newTopicFixture(uuid.New())

	var created *domain.Reply
	replyStore := &store.MockReplyStore{
		CreateFunc: func(ctx context.Context, reply *domain.Reply) error {
			created = reply
			return nil
		},
	}

	svc, err := service.NewReplyService(nil, replyStore, topicStoreReturning(topic), nil)
	require.NoError(t, err)

	reply, err := svc.CreateReply(context.Background(), authorID, topic.ID, "Helpful answer")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, authorID, reply.AuthorID)
	assert.Equal(t, topic.ID, reply.TopicID)
	assert.False(t, reply.Solution)
}

func TestCreateReply_TopicMissing(t *testing.T) {
	t.Parallel()

	svc, err := service.NewReplyService(
		nil, &store.MockReplyStore{}, &store.MockTopicStore{}, nil)
	require.NoError(t, err)

	_, err = svc.CreateReply(context.Background(), uuid.New(), uuid.New(), "orphan")
	assert.ErrorIs(t, err, store.ErrTopicNotFound)
}

func TestUpdateReply_NonOwnerDeniedWithoutWrite(t *testing.T) {
	t.Parallel()

	reply := newReplyFixture(uuid.New(), uuid.New())

	replyStore := replyStoreReturning(reply)
	writeAttempted := false
	replyStore.UpdateFunc = func(ctx context.Context, rp *domain.Reply) error {
		writeAttempted = true
		return nil
	}

	svc, err := service.NewReplyService(nil, replyStore, &store.MockTopicStore{}, nil)
	require.NoError(t, err)

	_, err = svc.UpdateReply(context.Background(), uuid.New(), reply.ID, "edited")
	assert.ErrorIs(t, err, authz.ErrNotOwner)
	assert.False(t, writeAttempted)
}

func TestUpdateReply_OwnerSucceeds(t *testing.T) {
	t.Parallel()

	authorID := uuid.New()
	reply := newReplyFixture(authorID, uuid.New())

	replyStore := replyStoreReturning(reply)
	replyStore.UpdateFunc = func(ctx context.Context, rp *domain.Reply) error {
		return nil
	}

	svc, err := service.NewReplyService(nil, replyStore, &store.MockTopicStore{}, nil)
	require.NoError(t, err)

	got, err := svc.UpdateReply(context.Background(), authorID, reply.ID, "edited message")
	require.NoError(t, err)
	assert.Equal(t, "edited message", got.Message)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestDeleteReply_NonOwnerDenied(t *testing.T) {
	t.Parallel()

	reply := newReplyFixture(uuid.New(), uuid.New())

	replyStore := replyStoreReturning(reply)
	deleteAttempted := false
	replyStore.DeleteFunc = func(ctx context.Context, id uuid.UUID) error {
		deleteAttempted = true
		return nil
	}

	svc, err := service.NewReplyService(nil, replyStore, &store.MockTopicStore{}, nil)
	require.NoError(t, err)

	err = svc.DeleteReply(context.Background(), uuid.New(), reply.ID)
	assert.ErrorIs(t, err, authz.ErrNotOwner)
	assert.False(t, deleteAttempted)
}

func TestMarkSolution_OnlyTopicAuthorDecides(t *testing.T) {
	t.Parallel()

	topicAuthor := uuid.New()
	replyAuthor := uuid.New()
	topic := newTopicFixture(topicAuthor)
	reply := newReplyFixture(replyAuthor, topic.ID)

	svc, err := service.NewReplyService(
		nil, replyStoreReturning(reply), topicStoreReturning(topic), nil)
	require.NoError(t, err)

	// The reply's own author cannot accept their answer as the solution.
	_, err = svc.MarkSolution(context.Background(), replyAuthor, reply.ID)
	assert.ErrorIs(t, err, authz.ErrNotOwner)
	assert.False(t, reply.Solution)

	// Nor can an unrelated user.
	_, err = svc.MarkSolution(context.Background(), uuid.New(), reply.ID)
	assert.ErrorIs(t, err, authz.ErrNotOwner)
}

func TestMarkSolution_ReplyMissing(t *testing.T) {
	t.Parallel()

	svc, err := service.NewReplyService(
		nil, &store.MockReplyStore{}, &store.MockTopicStore{}, nil)
	require.NoError(t, err)

	_, err = svc.MarkSolution(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, store.ErrReplyNotFound)
}
