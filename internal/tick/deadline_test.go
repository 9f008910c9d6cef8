package tick_test

import (
	"testing"
	"time"

	"github.com/latticert/precisionloop/internal/tick"
)

func TestNanoDeadline(t *testing.T) {
	d := tick.NewNanoDeadline(50 * time.Millisecond)

	if d.Reached() {
		t.Error("expected Reached() = false immediately after creation")
	}

	time.Sleep(70 * time.Millisecond)

	if !d.Reached() {
		t.Error("expected Reached() = true after the remaining time elapsed")
	}
	// A deadline never rearms.
	if !d.Reached() {
		t.Error("expected Reached() to stay true")
	}
}

func TestNanoDeadline_ZeroOrNegative(t *testing.T) {
	if !tick.NewNanoDeadline(0).Reached() {
		t.Error("expected a zero deadline to be reached immediately")
	}
	if !tick.NewNanoDeadline(-time.Millisecond).Reached() {
		t.Error("expected a negative deadline to be reached immediately")
	}
}

func TestHint_ReturnsPromptly(t *testing.T) {
	// Hint must be safe to issue in a tight loop on every architecture.
	d := tick.NewNanoDeadline(time.Millisecond)
	for !d.Reached() {
		tick.Hint()
	}
}
