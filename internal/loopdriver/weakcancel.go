package loopdriver

import (
	"weak"

	"github.com/latticert/precisionloop/internal/cancel"
)

// weakObserver is a weak cancel.Canceler: the driver owns the cancellation
// source, and the delay primitive only ever observes it. Driver keeps the
// only strong reference to its cancel.AtomicCanceler; every call into
// internal/delay is handed a weakObserver instead, built from a
// weak.Pointer, so the source is never kept alive by a reference sitting
// inside delay's call stack after the driver itself is gone.
type weakObserver struct {
	ptr weak.Pointer[cancel.AtomicCanceler]
}

func newWeakObserver(c *cancel.AtomicCanceler) weakObserver {
	return weakObserver{ptr: weak.Make(c)}
}

// Done reports true once the source has been cancelled, or if the source
// has already been collected (which can only happen once the driver itself
// is gone, so treating that as "cancelled" is safe and correct).
func (w weakObserver) Done() bool {
	c := w.ptr.Value()
	return c == nil || c.Done()
}

// Cancel triggers cancellation on the source, if it still exists. Driver
// never calls this through a weakObserver — it holds the strong reference
// for that — but the method is required to satisfy cancel.Canceler.
func (w weakObserver) Cancel() {
	if c := w.ptr.Value(); c != nil {
		c.Cancel()
	}
}
