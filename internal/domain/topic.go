package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TopicStatus represents the discussion state of a topic.
type TopicStatus string

// Possible topic status values
const (
	TopicStatusUnanswered TopicStatus = "unanswered"
	TopicStatusAnswered   TopicStatus = "answered"
	TopicStatusSolved     TopicStatus = "solved"
	TopicStatusClosed     TopicStatus = "closed"
)

// Common validation errors for Topic
var (
	ErrEmptyTopicID       = errors.New("topic ID cannot be empty")
	ErrEmptyTopicTitle    = errors.New("topic title cannot be empty")
	ErrEmptyTopicMessage  = errors.New("topic message cannot be empty")
	ErrEmptyTopicAuthorID = errors.New("topic author ID cannot be empty")
	ErrEmptyTopicCourseID = errors.New("topic course ID cannot be empty")
	ErrInvalidTopicStatus = errors.New("invalid topic status")
)

// Topic represents a discussion topic opened by a user under a course.
// AuthorID is set at creation and never reassigned afterward; it is the
// ownership anchor for update and delete authorization.
type Topic struct {
	ID        uuid.UUID   `json:"id"`
	Title     string      `json:"title"`
	Message   string      `json:"message"`
	Status    TopicStatus `json:"status"`
	AuthorID  uuid.UUID   `json:"author_id"`
	CourseID  uuid.UUID   `json:"course_id"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewTopic creates a new Topic authored by the given user under the given
// course. New topics start in the unanswered state. Returns an error if
// validation fails.
func NewTopic(authorID, courseID uuid.UUID, title, message string) (*Topic, error) {
	now := time.Now().UTC()
	topic := &Topic{
		ID:        uuid.New(),
		Title:     title,
		Message:   message,
		Status:    TopicStatusUnanswered,
		AuthorID:  authorID,
		CourseID:  courseID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := topic.Validate(); err != nil {
		return nil, err
	}

	return topic, nil
}

// Validate checks if the Topic has valid data.
// Returns an error if any field fails validation.
func (t *Topic) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTopicID
	}

	if t.Title == "" {
		return ErrEmptyTopicTitle
	}

	if t.Message == "" {
		return ErrEmptyTopicMessage
	}

	if t.AuthorID == uuid.Nil {
		return ErrEmptyTopicAuthorID
	}

	if t.CourseID == uuid.Nil {
		return ErrEmptyTopicCourseID
	}

	if !isValidTopicStatus(t.Status) {
		return ErrInvalidTopicStatus
	}

	return nil
}

// Alter applies a partial edit to the topic. Blank fields leave the current
// value untouched, matching partial-update semantics of the API.
func (t *Topic) Alter(title, message string) {
	if strings.TrimSpace(title) != "" {
		t.Title = title
	}
	if strings.TrimSpace(message) != "" {
		t.Message = message
	}
	t.UpdatedAt = time.Now().UTC()
}

// isValidTopicStatus checks if the status is one of the defined values.
func isValidTopicStatus(status TopicStatus) bool {
	switch status {
	case TopicStatusUnanswered, TopicStatusAnswered, TopicStatusSolved, TopicStatusClosed:
		return true
	}
	return false
}
