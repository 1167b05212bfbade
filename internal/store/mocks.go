package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/phrazzld/forum-api/internal/domain"
)

// Mock store implementations for testing. Each method delegates to a
// function field when set and falls back to the corresponding not-found
// sentinel otherwise. These are the canonical mocks used across all
// packages' tests.

// MockUserStore is a configurable in-test implementation of UserStore.
type MockUserStore struct {
	CreateFunc     func(ctx context.Context, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	UpdateFunc     func(ctx context.Context, user *domain.User) error
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
}

var _ UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return ErrUserNotFound
}

func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return ErrUserNotFound
}

func (m *MockUserStore) WithTx(tx *sql.Tx) UserStore { return m }

// MockCourseStore is a configurable in-test implementation of CourseStore.
type MockCourseStore struct {
	CreateFunc    func(ctx context.Context, course *domain.Course) error
	GetByIDFunc   func(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	GetByNameFunc func(ctx context.Context, name string) (*domain.Course, error)
	ListFunc      func(ctx context.Context) ([]*domain.Course, error)
}

var _ CourseStore = (*MockCourseStore)(nil)

func (m *MockCourseStore) Create(ctx context.Context, course *domain.Course) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, course)
	}
	return nil
}

func (m *MockCourseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrCourseNotFound
}

func (m *MockCourseStore) GetByName(ctx context.Context, name string) (*domain.Course, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, name)
	}
	return nil, ErrCourseNotFound
}

func (m *MockCourseStore) List(ctx context.Context) ([]*domain.Course, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

// MockTopicStore is a configurable in-test implementation of TopicStore.
type MockTopicStore struct {
	CreateFunc  func(ctx context.Context, topic *domain.Topic) error
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Topic, error)
	ListFunc    func(ctx context.Context, page Page) (*TopicPage, error)
	UpdateFunc  func(ctx context.Context, topic *domain.Topic) error
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
}

var _ TopicStore = (*MockTopicStore)(nil)

func (m *MockTopicStore) Create(ctx context.Context, topic *domain.Topic) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, topic)
	}
	return nil
}

func (m *MockTopicStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrTopicNotFound
}

func (m *MockTopicStore) List(ctx context.Context, page Page) (*TopicPage, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page)
	}
	return &TopicPage{}, nil
}

func (m *MockTopicStore) Update(ctx context.Context, topic *domain.Topic) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, topic)
	}
	return ErrTopicNotFound
}

func (m *MockTopicStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return ErrTopicNotFound
}

func (m *MockTopicStore) WithTx(tx *sql.Tx) TopicStore { return m }

// MockReplyStore is a configurable in-test implementation of ReplyStore.
type MockReplyStore struct {
	CreateFunc      func(ctx context.Context, reply *domain.Reply) error
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Reply, error)
	ListByTopicFunc func(ctx context.Context, topicID uuid.UUID) ([]*domain.Reply, error)
	UpdateFunc      func(ctx context.Context, reply *domain.Reply) error
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
}

var _ ReplyStore = (*MockReplyStore)(nil)

func (m *MockReplyStore) Create(ctx context.Context, reply *domain.Reply) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, reply)
	}
	return nil
}

func (m *MockReplyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reply, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrReplyNotFound
}

func (m *MockReplyStore) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]*domain.Reply, error) {
	if m.ListByTopicFunc != nil {
		return m.ListByTopicFunc(ctx, topicID)
	}
	return nil, nil
}

func (m *MockReplyStore) Update(ctx context.Context, reply *domain.Reply) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, reply)
	}
	return ErrReplyNotFound
}

func (m *MockReplyStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return ErrReplyNotFound
}

func (m *MockReplyStore) WithTx(tx *sql.Tx) ReplyStore { return m }
