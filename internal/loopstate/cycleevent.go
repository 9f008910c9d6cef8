package loopstate

import "github.com/latticert/precisionloop/internal/extent"

// CycleEvent is the immutable snapshot handed to the user cycle function at
// the start of a cycle. The driver owns the live
// fields this is copied from; the only field the user may write back is
// IsStopRequested, which the driver reads again after the user call returns.
type CycleEvent struct {
	// EventIndex is 0-based and monotonically increasing; it skips ahead by
	// 1+MissedCount across a missed cycle.
	EventIndex int64
	// MissedCount is the number of cycles missed immediately before this one.
	MissedCount int64
	// TotalMissed is the running total of missed cycles across the run.
	TotalMissed int64
	// Interval is the target interval currently configured for the loop.
	Interval extent.Extent
	// IntervalElapsed is the drift-adjusted wall time between the previous
	// and current cycle start.
	IntervalElapsed extent.Extent
	// IntervalAverage is the windowed mean of IntervalElapsed.
	IntervalAverage extent.Extent
	// Frequency is 1/IntervalAverage in Hz, or 0 when the average is zero.
	Frequency float64
	// IntervalJitter is the windowed standard deviation of IntervalElapsed
	// relative to Interval.
	IntervalJitter extent.Extent
	// NaturalElapsed is wall time since the loop's first cycle start.
	NaturalElapsed extent.Extent
	// DiscreteElapsed is the running sum of all IntervalElapsed values.
	DiscreteElapsed extent.Extent
	// IsStopRequested is user-writable; setting it asks the driver to begin
	// the Finishing transition after this cycle's update step.
	IsStopRequested bool
}
