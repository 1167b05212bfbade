package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/forum-api/internal/domain"
)

// Page describes a pagination window for list operations.
type Page struct {
	Number int // 1-based page number
	Size   int // items per page
}

// Offset returns the row offset corresponding to the page window.
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// TopicPage is one page of topics together with the total match count,
// so callers can compute the number of pages.
type TopicPage struct {
	Topics []*domain.Topic
	Total  int
}

// TopicStore defines the interface for topic data persistence.
type TopicStore interface {
	// Create saves a new topic to the store.
	Create(ctx context.Context, topic *domain.Topic) error

	// GetByID retrieves a topic by its unique ID.
	// Returns ErrTopicNotFound if the topic does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error)

	// List returns a page of topics ordered by creation time, newest first.
	List(ctx context.Context, page Page) (*TopicPage, error)

	// Update modifies an existing topic's title, message and status.
	// AuthorID and CourseID are immutable and not written.
	// Returns ErrTopicNotFound if the topic does not exist.
	Update(ctx context.Context, topic *domain.Topic) error

	// Delete removes a topic and its replies from the store by ID.
	// Returns ErrTopicNotFound if the topic does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TopicStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) TopicStore
}
