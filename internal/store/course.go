package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/forum-api/internal/domain"
)

// CourseStore defines the interface for course data persistence.
type CourseStore interface {
	// Create saves a new course to the store.
	// Returns ErrCourseExists if a course with the same name exists.
	Create(ctx context.Context, course *domain.Course) error

	// GetByID retrieves a course by its unique ID.
	// Returns ErrCourseNotFound if the course does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)

	// GetByName retrieves a course by its unique name.
	// Returns ErrCourseNotFound if the course does not exist.
	GetByName(ctx context.Context, name string) (*domain.Course, error)

	// List returns all courses ordered by name.
	List(ctx context.Context) ([]*domain.Course, error)
}
