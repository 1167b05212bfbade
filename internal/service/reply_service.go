package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/forum-api/internal/domain"
	"github.com/phrazzld/forum-api/internal/service/authz"
	"github.com/phrazzld/forum-api/internal/store"
)

// ReplyService provides reply-related operations. Mutations enforce the
// ownership rule: only a reply's author may edit or delete it, and only the
// parent topic's author may mark a reply as the solution.
type ReplyService interface {
	// CreateReply posts a new reply to a topic.
	// Returns store.ErrTopicNotFound if the topic does not exist.
	CreateReply(
		ctx context.Context,
		principalID, topicID uuid.UUID,
		message string,
	) (*domain.Reply, error)

	// ListReplies returns all replies to a topic, oldest first.
	// Returns store.ErrTopicNotFound if the topic does not exist.
	ListReplies(ctx context.Context, topicID uuid.UUID) ([]*domain.Reply, error)

	// UpdateReply edits a reply the principal authored.
	// Returns authz.ErrNotOwner if the principal is not the author;
	// store.ErrReplyNotFound if the reply does not exist.
	UpdateReply(
		ctx context.Context,
		principalID, replyID uuid.UUID,
		message string,
	) (*domain.Reply, error)

	// DeleteReply removes a reply the principal authored.
	// Returns authz.ErrNotOwner if the principal is not the author;
	// store.ErrReplyNotFound if the reply does not exist.
	DeleteReply(ctx context.Context, principalID, replyID uuid.UUID) error

	// MarkSolution marks a reply as the solution to its topic and moves the
	// topic to the solved state. Only the topic's author may do this.
	// Returns authz.ErrNotOwner if the principal did not author the topic.
	MarkSolution(ctx context.Context, principalID, replyID uuid.UUID) (*domain.Reply, error)
}

// replyService is the store-backed implementation of ReplyService.
type replyService struct {
	db         *sql.DB
	replyStore store.ReplyStore
	topicStore store.TopicStore
	logger     *slog.Logger
}

// Ensure replyService implements ReplyService interface
var _ ReplyService = (*replyService)(nil)

// NewReplyService creates a new ReplyService with the given dependencies.
// The db handle is used for the transactional solution-marking operation;
// it may be nil in tests that never call MarkSolution.
func NewReplyService(
	db *sql.DB,
	replyStore store.ReplyStore,
	topicStore store.TopicStore,
	logger *slog.Logger,
) (ReplyService, error) {
	if replyStore == nil {
		return nil, fmt.Errorf("reply store cannot be nil")
	}
	if topicStore == nil {
		return nil, fmt.Errorf("topic store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &replyService{
		db:         db,
		replyStore: replyStore,
		topicStore: topicStore,
		logger:     logger.With(slog.String("component", "reply_service")),
	}, nil
}

// CreateReply implements ReplyService.CreateReply.
func (s *replyService) CreateReply(
	ctx context.Context,
	principalID, topicID uuid.UUID,
	message string,
) (*domain.Reply, error) {
	// Confirm the topic exists before accepting a reply to it.
	if _, err := s.topicStore.GetByID(ctx, topicID); err != nil {
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}

	reply, err := domain.NewReply(principalID, topicID, message)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.replyStore.Create(ctx, reply); err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}

	s.logger.Debug("reply created",
		"reply_id", reply.ID,
		"topic_id", topicID,
		"author_id", principalID)

	return reply, nil
}

// ListReplies implements ReplyService.ListReplies.
func (s *replyService) ListReplies(ctx context.Context, topicID uuid.UUID) ([]*domain.Reply, error) {
	if _, err := s.topicStore.GetByID(ctx, topicID); err != nil {
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}

	replies, err := s.replyStore.ListByTopic(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}
	return replies, nil
}

// UpdateReply implements ReplyService.UpdateReply.
func (s *replyService) UpdateReply(
	ctx context.Context,
	principalID, replyID uuid.UUID,
	message string,
) (*domain.Reply, error) {
	reply, err := s.replyStore.GetByID(ctx, replyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reply: %w", err)
	}

	if err := authz.AuthorizeOwner(principalID, reply.AuthorID); err != nil {
		s.logger.Debug("reply update denied",
			"reply_id", replyID,
			"principal_id", principalID)
		return nil, err
	}

	if message != "" {
		reply.Message = message
	}
	reply.UpdatedAt = time.Now().UTC()

	if err := s.replyStore.Update(ctx, reply); err != nil {
		return nil, fmt.Errorf("failed to update reply: %w", err)
	}

	return reply, nil
}

// DeleteReply implements ReplyService.DeleteReply.
func (s *replyService) DeleteReply(ctx context.Context, principalID, replyID uuid.UUID) error {
	reply, err := s.replyStore.GetByID(ctx, replyID)
	if err != nil {
		return fmt.Errorf("failed to get reply: %w", err)
	}

	if err := authz.AuthorizeOwner(principalID, reply.AuthorID); err != nil {
		s.logger.Debug("reply delete denied",
			"reply_id", replyID,
			"principal_id", principalID)
		return err
	}

	if err := s.replyStore.Delete(ctx, replyID); err != nil {
		return fmt.Errorf("failed to delete reply: %w", err)
	}

	return nil
}

// MarkSolution implements ReplyService.MarkSolution. The reply and topic
// updates run in a single transaction so the solution flag and the topic
// status never diverge.
func (s *replyService) MarkSolution(
	ctx context.Context,
	principalID, replyID uuid.UUID,
) (*domain.Reply, error) {
	reply, err := s.replyStore.GetByID(ctx, replyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reply: %w", err)
	}

	topic, err := s.topicStore.GetByID(ctx, reply.TopicID)
	if err != nil {
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}

	// Accepting a solution is the topic author's call, not the reply author's.
	if err := authz.AuthorizeOwner(principalID, topic.AuthorID); err != nil {
		s.logger.Debug("mark solution denied",
			"reply_id", replyID,
			"topic_id", topic.ID,
			"principal_id", principalID)
		return nil, err
	}

	now := time.Now().UTC()
	reply.Solution = true
	reply.UpdatedAt = now
	topic.Status = domain.TopicStatusSolved
	topic.UpdatedAt = now

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.replyStore.WithTx(tx).Update(ctx, reply); err != nil {
			return fmt.Errorf("failed to update reply: %w", err)
		}
		if err := s.topicStore.WithTx(tx).Update(ctx, topic); err != nil {
			return fmt.Errorf("failed to update topic: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return reply, nil
}
