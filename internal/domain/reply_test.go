package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReply(t *testing.T) {
	t.Parallel()

	authorID := uuid.New()
	topicID := uuid.New()

	reply, err := NewReply(authorID, topicID, "An answer")
	require.NoError(t, err)
	assert.Equal(t, authorID, reply.AuthorID)
	assert.Equal(t, topicID, reply.TopicID)
	assert.False(t, reply.Solution, "new replies are never solutions")
}

func TestNewReply_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		authorID uuid.UUID
		topicID  uuid.UUID
		message  string
		wantErr  error
	}{
		{"empty message", uuid.New(), uuid.New(), "", ErrEmptyReplyMessage},
		{"nil author", uuid.Nil, uuid.New(), "msg", ErrEmptyReplyAuthorID},
		{"nil topic", uuid.New(), uuid.Nil, "msg", ErrEmptyReplyTopicID},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewReply(tt.authorID, tt.topicID, tt.message)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewCourse_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewCourse("", "category")
	assert.ErrorIs(t, err, ErrEmptyCourseName)

	_, err = NewCourse("name", "")
	assert.ErrorIs(t, err, ErrEmptyCourseCategory)

	course, err := NewCourse("go-basics", "programming")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, course.ID)
}
