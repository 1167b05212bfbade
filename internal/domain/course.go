package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Course
var (
	ErrEmptyCourseID       = errors.New("course ID cannot be empty")
	ErrEmptyCourseName     = errors.New("course name cannot be empty")
	ErrEmptyCourseCategory = errors.New("course category cannot be empty")
)

// Course represents a course that forum topics are filed under.
// Course names are unique.
type Course struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCourse creates a new Course with the given name and category.
// Returns an error if validation fails.
func NewCourse(name, category string) (*Course, error) {
	course := &Course{
		ID:        uuid.New(),
		Name:      name,
		Category:  category,
		CreatedAt: time.Now().UTC(),
	}

	if err := course.Validate(); err != nil {
		return nil, err
	}

	return course, nil
}

// Validate checks if the Course has valid data.
func (c *Course) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCourseID
	}

	if c.Name == "" {
		return ErrEmptyCourseName
	}

	if c.Category == "" {
		return ErrEmptyCourseCategory
	}

	return nil
}
