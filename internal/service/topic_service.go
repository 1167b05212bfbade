package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/forum-api/internal/domain"
	"github.com/phrazzld/forum-api/internal/service/authz"
	"github.com/phrazzld/forum-api/internal/store"
)

// TopicService provides topic-related operations. Mutating operations take
// the authenticated principal's ID and enforce the ownership rule before
// touching the store: a denied request performs no writes at all.
type TopicService interface {
	// CreateTopic opens a new topic under the named course, authored by
	// the given principal.
	// Returns store.ErrCourseNotFound if the course does not exist.
	CreateTopic(
		ctx context.Context,
		principalID uuid.UUID,
		courseName, title, message string,
	) (*domain.Topic, error)

	// GetTopic retrieves a topic by its ID.
	// Returns store.ErrTopicNotFound if the topic does not exist.
	GetTopic(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error)

	// ListTopics returns a page of topics, newest first.
	ListTopics(ctx context.Context, page store.Page) (*store.TopicPage, error)

	// UpdateTopic applies a partial edit to a topic the principal authored.
	// Blank title or message fields leave the current value untouched. A
	// non-blank courseName moves the topic under that course.
	// Returns authz.ErrNotOwner if the principal is not the author;
	// store.ErrTopicNotFound if the topic does not exist;
	// store.ErrCourseNotFound if the named course does not exist.
	UpdateTopic(
		ctx context.Context,
		principalID, topicID uuid.UUID,
		title, message, courseName string,
	) (*domain.Topic, error)

	// DeleteTopic removes a topic the principal authored.
	// Returns authz.ErrNotOwner if the principal is not the author;
	// store.ErrTopicNotFound if the topic does not exist.
	DeleteTopic(ctx context.Context, principalID, topicID uuid.UUID) error
}

// topicService is the store-backed implementation of TopicService.
type topicService struct {
	topicStore  store.TopicStore
	courseStore store.CourseStore
	logger      *slog.Logger
}

// Ensure topicService implements TopicService interface
var _ TopicService = (*topicService)(nil)

// NewTopicService creates a new TopicService with the given dependencies.
// If logger is nil, the process default logger is used.
func NewTopicService(
	topicStore store.TopicStore,
	courseStore store.CourseStore,
	logger *slog.Logger,
) (TopicService, error) {
	if topicStore == nil {
		return nil, fmt.Errorf("topic store cannot be nil")
	}
	if courseStore == nil {
		return nil, fmt.Errorf("course store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &topicService{
		topicStore:  topicStore,
		courseStore: courseStore,
		logger:      logger.With(slog.String("component", "topic_service")),
	}, nil
}

// CreateTopic implements TopicService.CreateTopic.
func (s *topicService) CreateTopic(
	ctx context.Context,
	principalID uuid.UUID,
	courseName, title, message string,
) (*domain.Topic, error) {
	course, err := s.courseStore.GetByName(ctx, courseName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve course %q: %w", courseName, err)
	}

	topic, err := domain.NewTopic(principalID, course.ID, title, message)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.topicStore.Create(ctx, topic); err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}

	s.logger.Debug("topic created",
		"topic_id", topic.ID,
		"author_id", topic.AuthorID,
		"course_id", topic.CourseID)

	return topic, nil
}

// GetTopic implements TopicService.GetTopic.
func (s *topicService) GetTopic(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error) {
	topic, err := s.topicStore.GetByID(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}
	return topic, nil
}

// ListTopics implements TopicService.ListTopics.
func (s *topicService) ListTopics(ctx context.Context, page store.Page) (*store.TopicPage, error) {
	result, err := s.topicStore.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	return result, nil
}

// UpdateTopic implements TopicService.UpdateTopic. The ownership check runs
// before any write; on denial the topic is returned to the store untouched.
func (s *topicService) UpdateTopic(
	ctx context.Context,
	principalID, topicID uuid.UUID,
	title, message, courseName string,
) (*domain.Topic, error) {
	topic, err := s.topicStore.GetByID(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}

	if err := authz.AuthorizeOwner(principalID, topic.AuthorID); err != nil {
		s.logger.Debug("topic update denied",
			"topic_id", topicID,
			"principal_id", principalID)
		return nil, err
	}

	if courseName != "" {
		course, err := s.courseStore.GetByName(ctx, courseName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve course %q: %w", courseName, err)
		}
		topic.CourseID = course.ID
	}

	topic.Alter(title, message)

	if err := s.topicStore.Update(ctx, topic); err != nil {
		return nil, fmt.Errorf("failed to update topic: %w", err)
	}

	return topic, nil
}

// DeleteTopic implements TopicService.DeleteTopic.
func (s *topicService) DeleteTopic(ctx context.Context, principalID, topicID uuid.UUID) error {
	topic, err := s.topicStore.GetByID(ctx, topicID)
	if err != nil {
		return fmt.Errorf("failed to get topic: %w", err)
	}

	if err := authz.AuthorizeOwner(principalID, topic.AuthorID); err != nil {
		s.logger.Debug("topic delete denied",
			"topic_id", topicID,
			"principal_id", principalID)
		return err
	}

	if err := s.topicStore.Delete(ctx, topicID); err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}

	return nil
}
