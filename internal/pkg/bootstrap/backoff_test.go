package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestBackoff() *Backoff {
	b := NewBackoff()
	b.BaseDelay = time.Millisecond
	b.MaxDelay = 4 * time.Millisecond
	b.jitter = func() float64 { return 0 }
	return b
}

func TestBackoffDoublesAndCaps(t *testing.T) {
	t.Parallel()

	b := newTestBackoff()

	var delays []time.Duration
	for {
		d, ok := b.Next()
		if !ok {
			break
		}
		delays = append(delays, d)
	}

	assert.Equal(t, []time.Duration{
		1 * time.Millisecond,
		2 * time.Millisecond,
		4 * time.Millisecond,
		4 * time.Millisecond, // capped at MaxDelay
	}, delays)
	assert.Equal(t, DefaultMaxAttempts, b.Attempts())
}

func TestBackoffJitterBounds(t *testing.T) {
	t.Parallel()

	b := NewBackoff()
	b.BaseDelay = 100 * time.Millisecond
	b.jitter = func() float64 { return 1 }

	d, ok := b.Next()
	assert.True(t, ok)
	assert.Equal(t, 150*time.Millisecond, d, "max jitter adds 50%%")
}

func TestBackoffReset(t *testing.T) {
	t.Parallel()

	b := newTestBackoff()
	b.Next()
	b.Next()
	assert.Equal(t, 2, b.Attempts())

	b.Reset()
	assert.Equal(t, 0, b.Attempts())

	d, ok := b.Next()
	assert.True(t, ok)
	assert.Equal(t, time.Millisecond, d)
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Retry(context.Background(), newTestBackoff(), func() error {
		calls++
		if calls < 3 {
			return errors.New("store unreachable")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("store unreachable")
	calls := 0
	err := Retry(context.Background(), newTestBackoff(), func() error {
		calls++
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, DefaultMaxAttempts+1, calls, "initial attempt plus retries")
}

func TestRetryHonorsContext(t *testing.T) {
	t.Parallel()

	b := NewBackoff()
	b.BaseDelay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, b, func() error { return errors.New("nope") })
	assert.ErrorIs(t, err, context.Canceled)
}
