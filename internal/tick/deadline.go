package tick

import (
	"time"

	"github.com/latticert/precisionloop/internal/clock"
)

// NanoDeadline is the portable spin-wait deadline, backed by the runtime's
// monotonic clock via clock.RawNanos. Each Reached call is one VDSO read
// and a subtraction; no atomics are needed because a spin tail is polled
// by the one goroutine that built it.
type NanoDeadline struct {
	start int64
	nanos int64
}

// NewNanoDeadline binds a deadline remaining from now. A zero or negative
// remaining is already reached.
func NewNanoDeadline(remaining time.Duration) *NanoDeadline {
	return &NanoDeadline{start: clock.RawNanos(), nanos: int64(remaining)}
}

// Reached reports whether remaining has elapsed since construction.
func (d *NanoDeadline) Reached() bool {
	return clock.RawNanos()-d.start >= d.nanos
}
