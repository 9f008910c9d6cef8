// Package precisionloop is a monotonic, drift-corrected, sub-millisecond
// periodic scheduler for multimedia, simulation, and control workloads that
// need to run a user-supplied cycle function at a requested interval (for
// example 13.333 ms for 75 Hz) with low jitter, no long-term drift, and
// bounded CPU cost, on operating systems whose native timing services give
// at best ~1 ms resolution.
//
// The package exposes three façades over the same loop driver
// (internal/loopdriver):
//
//   - PrecisionThread runs an ordinary func(*CycleEvent) error on a
//     dedicated background goroutine.
//   - PrecisionTimer is the same driver with a single observer slot fired
//     once per cycle, for callers that want to subscribe/unsubscribe rather
//     than pass a constructor callback.
//   - PrecisionTask takes a cycle function given a read-only cancellation
//     observer, for callers integrating with their own cooperative
//     cancellation (context.Context-based) rather than blocking outright.
//
// Delay and DelayAsync expose the precision delay primitive (internal/delay)
// directly, for callers that only need a single accurate sub-millisecond
// wait rather than a full periodic loop.
package precisionloop
