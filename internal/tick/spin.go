package tick

import "time"

// NewSpin returns the cheapest Deadline available for a single spin-wait
// of length remaining. It prefers the TSC-backed deadline when preferTSC
// is true and the platform supports it (calibrated once per process and
// cached — see spin_amd64.go), falling back to NanoDeadline's monotonic
// clock comparison everywhere else.
func NewSpin(remaining time.Duration, preferTSC bool) Deadline {
	if preferTSC {
		if d, ok := newTSCSpin(remaining); ok {
			return d
		}
	}
	return NewNanoDeadline(remaining)
}
