package clickqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClickEvent(t *testing.T) {
	t.Parallel()

	event := NewClickEvent(42)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, uint(42), event.LinkID)
	assert.Equal(t, EventStatusPending, event.Status)
	assert.Equal(t, DefaultMaxRetries, event.MaxRetries)
	assert.False(t, event.OccurredAt.IsZero())

	other := NewClickEvent(42)
	assert.NotEqual(t, event.ID, other.ID)
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	event := NewClickEvent(1)
	assert.True(t, event.IsRetryable())

	event.RetryCount = event.MaxRetries - 1
	assert.True(t, event.IsRetryable())

	event.RetryCount = event.MaxRetries
	assert.False(t, event.IsRetryable())
}
