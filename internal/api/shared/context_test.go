package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	ctx := SetTraceID(context.Background())
	traceID := GetTraceID(ctx)

	assert.Len(t, traceID, TraceIDLength*2)

	// Each context gets a distinct ID.
	other := GetTraceID(SetTraceID(context.Background()))
	assert.NotEqual(t, traceID, other)
}

func TestGetTraceID_Absent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", GetTraceID(context.Background()))
}
