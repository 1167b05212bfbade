package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/forum-api/internal/domain"
	"github.com/phrazzld/forum-api/internal/store"
)

// PostgresReplyStore implements the store.ReplyStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReplyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReplyStore creates a new PostgreSQL implementation of the
// ReplyStore interface.
func NewPostgresReplyStore(db store.DBTX, logger *slog.Logger) *PostgresReplyStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReplyStore{
		db:     db,
		logger: logger.With(slog.String("component", "reply_store")),
	}
}

// Ensure PostgresReplyStore implements store.ReplyStore interface
var _ store.ReplyStore = (*PostgresReplyStore)(nil)

// Create implements store.ReplyStore.Create
func (s *PostgresReplyStore) Create(ctx context.Context, reply *domain.Reply) error {
	query := `
		INSERT INTO replies (id, message, topic_id, author_id, solution, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		reply.ID, reply.Message, reply.TopicID, reply.AuthorID,
		reply.Solution, reply.CreatedAt, reply.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create reply: %w", MapError(err))
	}

	return nil
}

// GetByID implements store.ReplyStore.GetByID
func (s *PostgresReplyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reply, error) {
	query := `
		SELECT id, message, topic_id, author_id, solution, created_at, updated_at
		FROM replies
		WHERE id = $1`

	var reply domain.Reply
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&reply.ID, &reply.Message, &reply.TopicID, &reply.AuthorID,
		&reply.Solution, &reply.CreatedAt, &reply.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrReplyNotFound
		}
		return nil, fmt.Errorf("failed to scan reply: %w", MapError(err))
	}

	return &reply, nil
}

// ListByTopic implements store.ReplyStore.ListByTopic
func (s *PostgresReplyStore) ListByTopic(
	ctx context.Context,
	topicID uuid.UUID,
) ([]*domain.Reply, error) {
	query := `
		SELECT id, message, topic_id, author_id, solution, created_at, updated_at
		FROM replies
		WHERE topic_id = $1
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Error("failed to close rows", "error", err)
		}
	}()

	var replies []*domain.Reply
	for rows.Next() {
		var reply domain.Reply
		err := rows.Scan(
			&reply.ID, &reply.Message, &reply.TopicID, &reply.AuthorID,
			&reply.Solution, &reply.CreatedAt, &reply.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reply: %w", err)
		}
		replies = append(replies, &reply)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate replies: %w", err)
	}

	return replies, nil
}

// Update implements store.ReplyStore.Update. TopicID and AuthorID are
// immutable and not written.
func (s *PostgresReplyStore) Update(ctx context.Context, reply *domain.Reply) error {
	query := `
		UPDATE replies
		SET message = $2, solution = $3, updated_at = $4
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		reply.ID, reply.Message, reply.Solution, reply.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update reply: %w", MapError(err))
	}

	return CheckRowsAffected(result, "reply")
}

// Delete implements store.ReplyStore.Delete
func (s *PostgresReplyStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM replies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reply: %w", MapError(err))
	}

	return CheckRowsAffected(result, "reply")
}

// WithTx implements store.ReplyStore.WithTx
func (s *PostgresReplyStore) WithTx(tx *sql.Tx) store.ReplyStore {
	return &PostgresReplyStore{
		db:     tx,
		logger: s.logger,
	}
}
