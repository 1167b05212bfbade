package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/forum-api/internal/domain"
	"github.com/phrazzld/forum-api/internal/store"
)

// CourseService provides course-related operations.
type CourseService interface {
	// CreateCourse registers a new course.
	// Returns store.ErrCourseExists if the name is already taken.
	CreateCourse(ctx context.Context, name, category string) (*domain.Course, error)

	// GetCourse retrieves a course by its ID.
	// Returns store.ErrCourseNotFound if the course does not exist.
	GetCourse(ctx context.Context, courseID uuid.UUID) (*domain.Course, error)

	// ListCourses returns all courses ordered by name.
	ListCourses(ctx context.Context) ([]*domain.Course, error)
}

// courseService is the store-backed implementation of CourseService.
type courseService struct {
	courseStore store.CourseStore
	logger      *slog.Logger
}

// Ensure courseService implements CourseService interface
var _ CourseService = (*courseService)(nil)

// NewCourseService creates a new CourseService with the given dependencies.
func NewCourseService(courseStore store.CourseStore, logger *slog.Logger) (CourseService, error) {
	if courseStore == nil {
		return nil, fmt.Errorf("course store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &courseService{
		courseStore: courseStore,
		logger:      logger.With(slog.String("component", "course_service")),
	}, nil
}

// CreateCourse implements CourseService.CreateCourse.
func (s *courseService) CreateCourse(
	ctx context.Context,
	name, category string,
) (*domain.Course, error) {
	course, err := domain.NewCourse(name, category)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.courseStore.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Debug("course created", "course_id", course.ID, "name", course.Name)
	return course, nil
}

// GetCourse implements CourseService.GetCourse.
func (s *courseService) GetCourse(
	ctx context.Context,
	courseID uuid.UUID,
) (*domain.Course, error) {
	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

// ListCourses implements CourseService.ListCourses.
func (s *courseService) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	courses, err := s.courseStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}
