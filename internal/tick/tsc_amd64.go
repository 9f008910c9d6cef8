//go:build amd64

package tick

import (
	"time"
)

// rdtsc reads the CPU's Time Stamp Counter.
// Implemented in tsc_amd64.s
func rdtsc() uint64

// CalibrateTSC measures CPU cycles per nanosecond.
//
// This performs a ~10ms calibration by comparing TSC ticks against
// wall clock time. The result is approximate and can vary with:
//   - CPU frequency scaling (Turbo Boost, SpeedStep)
//   - Power management states
//   - Thermal throttling
//
// For best results, run on a warmed-up CPU with frequency governor
// set to "performance".
func CalibrateTSC() float64 {
	// Warm up the TSC path
	rdtsc()
	rdtsc()

	start := rdtsc()
	t1 := time.Now()
	time.Sleep(10 * time.Millisecond)
	end := rdtsc()
	t2 := time.Now()

	cycles := float64(end - start)
	nanos := float64(t2.Sub(t1).Nanoseconds())

	return cycles / nanos
}

// TSCDeadline is the x86 spin-wait deadline: the remaining duration is
// converted to a cycle count once at construction, so each Reached call is
// a bare RDTSC and a comparison, bypassing the OS entirely. NewSpin hands
// one to the delay primitive at the highest precision setting.
//
// The conversion depends on a calibrated cycles-per-nanosecond ratio and
// drifts with CPU frequency changes; over a spin tail of at most a few
// milliseconds that drift is far below the jitter being fought.
type TSCDeadline struct {
	deadline    uint64
	cyclesPerNs float64
}

// NewTSCDeadline binds a deadline remaining from now, using an explicit
// cycles-per-nanosecond ratio (e.g. 3.0 for a 3GHz CPU). A zero or
// negative remaining is already reached.
func NewTSCDeadline(remaining time.Duration, cyclesPerNs float64) *TSCDeadline {
	d := &TSCDeadline{cyclesPerNs: cyclesPerNs}
	now := rdtsc()
	if remaining <= 0 {
		d.deadline = now
		return d
	}
	d.deadline = now + uint64(float64(remaining.Nanoseconds())*cyclesPerNs)
	return d
}

// Reached reports whether the target cycle count has passed.
func (d *TSCDeadline) Reached() bool {
	return rdtsc() >= d.deadline
}

// CyclesPerNs returns the ratio the deadline was built with.
func (d *TSCDeadline) CyclesPerNs() float64 {
	return d.cyclesPerNs
}
