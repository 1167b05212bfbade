package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/forum-api/internal/domain"
)

// ReplyStore defines the interface for reply data persistence.
type ReplyStore interface {
	// Create saves a new reply to the store.
	Create(ctx context.Context, reply *domain.Reply) error

	// GetByID retrieves a reply by its unique ID.
	// Returns ErrReplyNotFound if the reply does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reply, error)

	// ListByTopic returns all replies to a topic ordered by creation time.
	ListByTopic(ctx context.Context, topicID uuid.UUID) ([]*domain.Reply, error)

	// Update modifies an existing reply's message and solution flag.
	// Returns ErrReplyNotFound if the reply does not exist.
	Update(ctx context.Context, reply *domain.Reply) error

	// Delete removes a reply from the store by its ID.
	// Returns ErrReplyNotFound if the reply does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ReplyStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) ReplyStore
}
