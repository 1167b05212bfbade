package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Reply
var (
	ErrEmptyReplyID       = errors.New("reply ID cannot be empty")
	ErrEmptyReplyMessage  = errors.New("reply message cannot be empty")
	ErrEmptyReplyTopicID  = errors.New("reply topic ID cannot be empty")
	ErrEmptyReplyAuthorID = errors.New("reply author ID cannot be empty")
)

// Reply represents an answer posted to a topic. Like topics, replies record
// their author at creation time; only the author may edit or delete one.
type Reply struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	TopicID   uuid.UUID `json:"topic_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Solution  bool      `json:"solution"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewReply creates a new Reply to the given topic by the given author.
// Returns an error if validation fails.
func NewReply(authorID, topicID uuid.UUID, message string) (*Reply, error) {
	now := time.Now().UTC()
	reply := &Reply{
		ID:        uuid.New(),
		Message:   message,
		TopicID:   topicID,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := reply.Validate(); err != nil {
		return nil, err
	}

	return reply, nil
}

// Validate checks if the Reply has valid data.
func (r *Reply) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyReplyID
	}

	if r.Message == "" {
		return ErrEmptyReplyMessage
	}

	if r.TopicID == uuid.Nil {
		return ErrEmptyReplyTopicID
	}

	if r.AuthorID == uuid.Nil {
		return ErrEmptyReplyAuthorID
	}

	return nil
}
