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

// PostgresCourseStore implements the store.CourseStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCourseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCourseStore creates a new PostgreSQL implementation of the
// CourseStore interface.
func NewPostgresCourseStore(db store.DBTX, logger *slog.Logger) *PostgresCourseStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCourseStore{
		db:     db,
		logger: logger.With(slog.String("component", "course_store")),
	}
}

// Ensure PostgresCourseStore implements store.CourseStore interface
var _ store.CourseStore = (*PostgresCourseStore)(nil)

// Create implements store.CourseStore.Create
func (s *PostgresCourseStore) Create(ctx context.Context, course *domain.Course) error {
	query := `
		INSERT INTO courses (id, name, category, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := s.db.ExecContext(ctx, query,
		course.ID, course.Name, course.Category, course.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrCourseExists, err)
		}
		return fmt.Errorf("failed to create course: %w", MapError(err))
	}

	return nil
}

// GetByID implements store.CourseStore.GetByID
func (s *PostgresCourseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	query := `
		SELECT id, name, category, created_at
		FROM courses
		WHERE id = $1`

	return s.scanCourse(s.db.QueryRowContext(ctx, query, id))
}

// GetByName implements store.CourseStore.GetByName
func (s *PostgresCourseStore) GetByName(ctx context.Context, name string) (*domain.Course, error) {
	query := `
		SELECT id, name, category, created_at
		FROM courses
		WHERE name = $1`

	return s.scanCourse(s.db.QueryRowContext(ctx, query, name))
}

// List implements store.CourseStore.List
func (s *PostgresCourseStore) List(ctx context.Context) ([]*domain.Course, error) {
	query := `
		SELECT id, name, category, created_at
		FROM courses
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Error("failed to close rows", "error", err)
		}
	}()

	var courses []*domain.Course
	for rows.Next() {
		var course domain.Course
		if err := rows.Scan(&course.ID, &course.Name, &course.Category, &course.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, &course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}

	return courses, nil
}

// scanCourse maps a single database row onto a domain.Course.
func (s *PostgresCourseStore) scanCourse(row *sql.Row) (*domain.Course, error) {
	var course domain.Course
	err := row.Scan(&course.ID, &course.Name, &course.Category, &course.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to scan course: %w", MapError(err))
	}
	return &course, nil
}
