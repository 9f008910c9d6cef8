package precisionloop_test

import (
	"context"
	"testing"
	"time"

	"github.com/latticert/precisionloop"
)

// TestDelay_ZeroOrNegative_ReturnsImmediately covers the boundary
// behaviour: a zero or negative duration returns within a small constant.
func TestDelay_ZeroOrNegative_ReturnsImmediately(t *testing.T) {
	start := time.Now()
	if err := precisionloop.Delay(precisionloop.Zero, precisionloop.Default, nil); err != nil {
		t.Fatalf("Delay(Zero) = %v, want nil", err)
	}
	if err := precisionloop.Delay(precisionloop.FromMilliseconds(-5), precisionloop.Default, nil); err != nil {
		t.Fatalf("Delay(-5ms) = %v, want nil", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("Delay(Zero) and Delay(-5ms) took %s, want near-immediate", elapsed)
	}
}

// TestDelay_BlocksForApproximatelyRequestedDuration checks that a short
// delay's actual elapsed time is never less than the requested duration.
func TestDelay_BlocksForApproximatelyRequestedDuration(t *testing.T) {
	want := 5 * time.Millisecond
	start := time.Now()
	if err := precisionloop.Delay(precisionloop.FromMilliseconds(5), precisionloop.High, nil); err != nil {
		t.Fatalf("Delay: %v", err)
	}
	if got := time.Since(start); got < want {
		t.Errorf("Delay elapsed %s, want >= %s", got, want)
	}
}

// TestDelayAsync_ContextCancel_ReturnsEarly checks that cancellation
// issued during a multi-second delay returns promptly.
func TestDelayAsync_ContextCancel_ReturnsEarly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	if err := precisionloop.DelayAsync(ctx, precisionloop.FromSeconds(5), precisionloop.Default, nil); err != nil {
		t.Fatalf("DelayAsync: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("DelayAsync did not return promptly after ctx cancel: took %s", elapsed)
	}
}
