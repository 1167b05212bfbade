package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/forum-api/internal/domain"
	"github.com/phrazzld/forum-api/internal/store"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user.
	UserID uuid.UUID `json:"user_id"`

	// TokenType labels the scheme the token must be presented with.
	// Always "Bearer".
	TokenType string `json:"token_type"`

	// AccessToken is the JWT used for API authorization.
	AccessToken string `json:"access_token"`

	// ExpiresAt is the RFC 3339 timestamp when the access token expires.
	ExpiresAt string `json:"expires_at"`
}

// UpdateUserRequest defines the payload for editing the caller's own
// account. Omitted or empty fields leave the current value untouched; a
// non-empty password replaces the stored hash.
type UpdateUserRequest struct {
	Name     string `json:"name"     validate:"omitempty,max=100"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
}

// CreateTopicRequest defines the payload for opening a new topic.
type CreateTopicRequest struct {
	Title      string `json:"title"       validate:"required,max=200"`
	Message    string `json:"message"     validate:"required"`
	CourseName string `json:"course_name" validate:"required"`
}

// UpdateTopicRequest defines the payload for editing a topic.
// Omitted or empty fields leave the current value untouched. A course
// name, when present, moves the topic under that course.
type UpdateTopicRequest struct {
	Title      string `json:"title"       validate:"omitempty,max=200"`
	Message    string `json:"message"     validate:"omitempty"`
	CourseName string `json:"course_name" validate:"omitempty,max=100"`
}

// TopicResponse represents the response data for a topic.
type TopicResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	AuthorID  uuid.UUID `json:"author_id"`
	CourseID  uuid.UUID `json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TopicListResponse is one page of topics plus pagination bookkeeping.
type TopicListResponse struct {
	Topics     []TopicResponse `json:"topics"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalItems int             `json:"total_items"`
	TotalPages int             `json:"total_pages"`
}

// CreateReplyRequest defines the payload for posting a reply.
type CreateReplyRequest struct {
	Message string `json:"message" validate:"required"`
}

// UpdateReplyRequest defines the payload for editing a reply.
type UpdateReplyRequest struct {
	Message string `json:"message" validate:"required"`
}

// ReplyResponse represents the response data for a reply.
type ReplyResponse struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	TopicID   uuid.UUID `json:"topic_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Solution  bool      `json:"solution"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCourseRequest defines the payload for registering a course.
type CreateCourseRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Category string `json:"category" validate:"required,max=100"`
}

// CourseResponse represents the response data for a course.
type CourseResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

// UserResponse represents the public view of a user. The password hash
// never appears here.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func topicToResponse(t *domain.Topic) TopicResponse {
	return TopicResponse{
		ID:        t.ID,
		Title:     t.Title,
		Message:   t.Message,
		Status:    string(t.Status),
		AuthorID:  t.AuthorID,
		CourseID:  t.CourseID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func topicPageToResponse(page *store.TopicPage, p store.Page) TopicListResponse {
	topics := make([]TopicResponse, 0, len(page.Topics))
	for _, t := range page.Topics {
		topics = append(topics, topicToResponse(t))
	}
	totalPages := 0
	if p.Size > 0 {
		totalPages = (page.Total + p.Size - 1) / p.Size
	}
	return TopicListResponse{
		Topics:     topics,
		Page:       p.Number,
		PageSize:   p.Size,
		TotalItems: page.Total,
		TotalPages: totalPages,
	}
}

func replyToResponse(rep *domain.Reply) ReplyResponse {
	return ReplyResponse{
		ID:        rep.ID,
		Message:   rep.Message,
		TopicID:   rep.TopicID,
		AuthorID:  rep.AuthorID,
		Solution:  rep.Solution,
		CreatedAt: rep.CreatedAt,
		UpdatedAt: rep.UpdatedAt,
	}
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

func courseToResponse(c *domain.Course) CourseResponse {
	return CourseResponse{
		ID:       c.ID,
		Name:     c.Name,
		Category: c.Category,
	}
}
