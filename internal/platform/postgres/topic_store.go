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

// PostgresTopicStore implements the store.TopicStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTopicStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTopicStore creates a new PostgreSQL implementation of the
// TopicStore interface.
func NewPostgresTopicStore(db store.DBTX, logger *slog.Logger) *PostgresTopicStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTopicStore{
		db:     db,
		logger: logger.With(slog.String("component", "topic_store")),
	}
}

// Ensure PostgresTopicStore implements store.TopicStore interface
var _ store.TopicStore = (*PostgresTopicStore)(nil)

// Create implements store.TopicStore.Create
func (s *PostgresTopicStore) Create(ctx context.Context, topic *domain.Topic) error {
	query := `
		INSERT INTO topics (id, title, message, status, author_id, course_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		topic.ID, topic.Title, topic.Message, topic.Status,
		topic.AuthorID, topic.CourseID, topic.CreatedAt, topic.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create topic: %w", MapError(err))
	}

	return nil
}

// GetByID implements store.TopicStore.GetByID
func (s *PostgresTopicStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error) {
	query := `
		SELECT id, title, message, status, author_id, course_id, created_at, updated_at
		FROM topics
		WHERE id = $1`

	var topic domain.Topic
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&topic.ID, &topic.Title, &topic.Message, &topic.Status,
		&topic.AuthorID, &topic.CourseID, &topic.CreatedAt, &topic.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrTopicNotFound
		}
		return nil, fmt.Errorf("failed to scan topic: %w", MapError(err))
	}

	return &topic, nil
}

// List implements store.TopicStore.List. Topics are returned newest first;
// the total count covers all topics so callers can compute page counts.
func (s *PostgresTopicStore) List(ctx context.Context, page store.Page) (*store.TopicPage, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM topics`).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count topics: %w", MapError(err))
	}

	query := `
		SELECT id, title, message, status, author_id, course_id, created_at, updated_at
		FROM topics
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Error("failed to close rows", "error", err)
		}
	}()

	var topics []*domain.Topic
	for rows.Next() {
		var topic domain.Topic
		err := rows.Scan(
			&topic.ID, &topic.Title, &topic.Message, &topic.Status,
			&topic.AuthorID, &topic.CourseID, &topic.CreatedAt, &topic.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, &topic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate topics: %w", err)
	}

	return &store.TopicPage{Topics: topics, Total: total}, nil
}

// Update implements store.TopicStore.Update. AuthorID and CourseID are
// immutable and deliberately absent from the SET clause.
func (s *PostgresTopicStore) Update(ctx context.Context, topic *domain.Topic) error {
	query := `
		UPDATE topics
		SET title = $2, message = $3, status = $4, updated_at = $5
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		topic.ID, topic.Title, topic.Message, topic.Status, topic.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update topic: %w", MapError(err))
	}

	return CheckRowsAffected(result, "topic")
}

// Delete implements store.TopicStore.Delete. Replies are removed by the
// ON DELETE CASCADE constraint on the replies table.
func (s *PostgresTopicStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM topics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete topic: %w", MapError(err))
	}

	return CheckRowsAffected(result, "topic")
}

// WithTx implements store.TopicStore.WithTx
func (s *PostgresTopicStore) WithTx(tx *sql.Tx) store.TopicStore {
	return &PostgresTopicStore{
		db:     tx,
		logger: s.logger,
	}
}
