// Package backoff provides retry delay strategies for reconnect loops.
package backoff

import (
	"context"
	"time"
)

// Strategy yields successive retry delays.
type Strategy interface {
	// NextDelay returns the delay before the given attempt (0-based).
	NextDelay(attempt int) time.Duration
}

// Exponential grows the delay by Multiplier per attempt, capped at
// MaxDelay.
type Exponential struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// Default is the standard reconnect policy: 1s initial delay, doubling
// up to 30s.
func Default() *Exponential {
	return &Exponential{
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2,
	}
}

// NextDelay implements Strategy.
func (e *Exponential) NextDelay(attempt int) time.Duration {
	delay := e.InitialDelay
	if delay <= 0 {
		delay = time.Second
	}
	multiplier := e.Multiplier
	if multiplier < 1 {
		multiplier = 2
	}
	for i := 0; i < attempt; i++ {
		delay = time.Duration(float64(delay) * multiplier)
		if e.MaxDelay > 0 && delay >= e.MaxDelay {
			return e.MaxDelay
		}
	}
	return delay
}

// Sleep waits for the attempt's delay or until ctx is done.
func Sleep(ctx context.Context, s Strategy, attempt int) error {
	timer := time.NewTimer(s.NextDelay(attempt))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
