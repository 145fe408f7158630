package backoff

import (
	"context"
	"time"
)

// Strategy returns the wait before retry number count.
type Strategy func(count int, start time.Duration) time.Duration

// Backoff waits a growing duration between retries, capped at limit.
type Backoff struct {
	LastDuration time.Duration
	NextDuration time.Duration
	start        time.Duration
	limit        time.Duration
	count        int
	strategy     Strategy
}

func NewBackoff(strategy Strategy, start time.Duration, limit time.Duration) *Backoff {
	backoff := Backoff{strategy: strategy, start: start, limit: limit}
	backoff.Reset()
	return &backoff
}

func (b *Backoff) Reset() {
	b.count = 0
	b.LastDuration = 0
	b.NextDuration = b.getNextDuration()
}

// Backoff sleeps NextDuration. It returns the context error if ctx ends first.
func (b *Backoff) Backoff(ctx context.Context) error {
	t := time.NewTimer(b.NextDuration)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
	}
	b.count++
	b.LastDuration = b.NextDuration
	b.NextDuration = b.getNextDuration()
	return nil
}

func (b *Backoff) getNextDuration() time.Duration {
	backoff := b.strategy(b.count, b.start)
	if b.limit > 0 && backoff > b.limit {
		backoff = b.limit
	}
	return backoff
}

func exponential(count int, start time.Duration) time.Duration {
	return start << uint(count)
}

func NewExponential(start time.Duration, limit time.Duration) *Backoff {
	return NewBackoff(exponential, start, limit)
}

func linear(count int, start time.Duration) time.Duration {
	return time.Duration(count+1) * start
}

func NewLinear(start time.Duration, limit time.Duration) *Backoff {
	return NewBackoff(linear, start, limit)
}
