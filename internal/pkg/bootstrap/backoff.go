// Package bootstrap drives the bounded retry used when loading the
// session profile from the backing store. The backoff is an explicit
// little state machine (attempt count, next delay) owned by the caller,
// the domain packages never depend on retry timing.
package bootstrap

import (
	"context"
	"math/rand"
	"time"
)

const (
	DefaultMaxAttempts = 4
	DefaultBaseDelay   = 250 * time.Millisecond
	DefaultMaxDelay    = 5 * time.Second
)

// Backoff tracks retry state. The zero value is not usable, construct
// with NewBackoff.
type Backoff struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration

	attempts int
	jitter   func() float64
}

func NewBackoff() *Backoff {
	return &Backoff{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		MaxDelay:    DefaultMaxDelay,
		jitter:      rand.Float64,
	}
}

// Attempts returns how many delays have been handed out so far.
func (b *Backoff) Attempts() int {
	return b.attempts
}

// Next returns the delay before the next attempt and whether another
// attempt is allowed. The delay doubles per attempt, capped at
// MaxDelay, with up to 50% random jitter added on top.
func (b *Backoff) Next() (time.Duration, bool) {
	if b.attempts >= b.MaxAttempts {
		return 0, false
	}

	delay := b.BaseDelay << uint(b.attempts)
	if delay > b.MaxDelay {
		delay = b.MaxDelay
	}
	delay += time.Duration(float64(delay) * 0.5 * b.jitter())

	b.attempts++
	return delay, true
}

// Reset clears the attempt counter so the backoff can be reused.
func (b *Backoff) Reset() {
	b.attempts = 0
}

// Retry runs fn until it succeeds, the backoff is exhausted, or the
// context is canceled. The first attempt runs immediately. The last
// error seen is returned when all attempts fail.
func Retry(ctx context.Context, b *Backoff, fn func() error) error {
	var lastErr error
	for {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
		}

		delay, ok := b.Next()
		if !ok {
			return lastErr
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
