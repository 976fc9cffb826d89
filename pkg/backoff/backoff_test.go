package backoff

import (
	"context"
	"testing"
	"time"
)

func TestExponentialGrowth(t *testing.T) {
	e := &Exponential{InitialDelay: time.Second, MaxDelay: 30 * time.Second, Multiplier: 2}

	want := []time.Duration{
		time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		30 * time.Second, // capped
		30 * time.Second,
	}
	for attempt, expected := range want {
		if got := e.NextDelay(attempt); got != expected {
			t.Errorf("attempt %d: got %v, want %v", attempt, got, expected)
		}
	}
}

func TestZeroValueDefaults(t *testing.T) {
	var e Exponential
	if got := e.NextDelay(0); got != time.Second {
		t.Errorf("zero-value initial delay = %v, want 1s", got)
	}
	if got := e.NextDelay(1); got != 2*time.Second {
		t.Errorf("zero-value second delay = %v, want 2s", got)
	}
}

func TestSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := &Exponential{InitialDelay: time.Minute}
	start := time.Now()
	if err := Sleep(ctx, e, 0); err == nil {
		t.Fatal("expected context error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Sleep blocked for %v despite cancelled context", elapsed)
	}
}
