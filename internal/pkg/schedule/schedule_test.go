package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	t1 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
)

func TestResolveWithoutSchedule(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, StateActive, Resolve(now, nil, nil, true))
	assert.Equal(t, StateInactive, Resolve(now, nil, nil, false))

	// Half-set window counts as no schedule.
	assert.Equal(t, StateActive, Resolve(now, &t1, nil, true))
	assert.Equal(t, StateInactive, Resolve(now, nil, &t2, false))
}

func TestResolveWithSchedule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		now  time.Time
		want State
	}{
		{name: "before window", now: t1.Add(-time.Hour), want: StateScheduledPending},
		{name: "at start", now: t1, want: StateScheduledActive},
		{name: "inside window", now: t1.Add(24 * time.Hour), want: StateScheduledActive},
		{name: "at end", now: t2, want: StateScheduledActive},
		{name: "after window", now: t2.Add(time.Second), want: StateScheduledExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The manual flag is ignored once a schedule is present.
			assert.Equal(t, tt.want, Resolve(tt.now, &t1, &t2, false))
			assert.Equal(t, tt.want, Resolve(tt.now, &t1, &t2, true))
		})
	}
}

func TestResolveInvertedWindow(t *testing.T) {
	t.Parallel()

	// end before start is malformed and falls back to the manual flag
	now := t1.Add(time.Hour)
	assert.Equal(t, StateActive, Resolve(now, &t2, &t1, true))
	assert.Equal(t, StateInactive, Resolve(now, &t2, &t1, false))
}

func TestIsReachable(t *testing.T) {
	t.Parallel()

	assert.True(t, IsReachable(t1.Add(time.Hour), &t1, &t2, false))
	assert.False(t, IsReachable(t1.Add(-time.Hour), &t1, &t2, true))
	assert.False(t, IsReachable(t2.Add(time.Hour), &t1, &t2, true))
	assert.True(t, IsReachable(t1, nil, nil, true))
	assert.False(t, IsReachable(t1, nil, nil, false))
}

func TestParseWindow(t *testing.T) {
	t.Parallel()

	start, end := ParseWindow("2025-01-01T00:00:00Z", "2025-01-10T00:00:00Z")
	assert.NotNil(t, start)
	assert.NotNil(t, end)
	assert.Equal(t, t1, *start)
	assert.Equal(t, t2, *end)

	// datetime-local format from the form
	start, end = ParseWindow("2025-01-01T10:30", "2025-01-02T10:30")
	assert.NotNil(t, start)
	assert.NotNil(t, end)

	// malformed input means no schedule
	start, end = ParseWindow("not-a-date", "2025-01-10T00:00:00Z")
	assert.Nil(t, start)
	assert.Nil(t, end)

	start, end = ParseWindow("", "")
	assert.Nil(t, start)
	assert.Nil(t, end)
}
